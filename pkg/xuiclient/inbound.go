package xuiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"xui-panel-client/internal/constants"
	"xui-panel-client/internal/models"
)

// InboundAPI reads the inbounds configured on the panel
type InboundAPI struct {
	transport Transport
	logger    logrus.FieldLogger
}

// NewInboundAPI creates an inbounds API over the given transport
func NewInboundAPI(transport Transport, logger logrus.FieldLogger) *InboundAPI {
	return &InboundAPI{
		transport: transport,
		logger:    logger,
	}
}

// GetList returns every inbound with its client statistics
func (a *InboundAPI) GetList(ctx context.Context) ([]models.Inbound, error) {
	a.logger.Info("Getting inbounds...")

	resp, err := a.transport.Get(ctx, constants.EndpointInboundList)
	if err != nil {
		a.logger.Errorf("Get inbounds failed: %v", err)
		return nil, err
	}

	var inbounds []models.Inbound
	if err := json.Unmarshal(resp.Obj, &inbounds); err != nil {
		a.logger.Errorf("Failed to decode inbounds: %v", err)
		return nil, err
	}
	if inbounds == nil {
		inbounds = []models.Inbound{}
	}

	a.logger.Infof("Retrieved %d inbounds successfully.", len(inbounds))
	return inbounds, nil
}

// GetByID returns a single inbound
func (a *InboundAPI) GetByID(ctx context.Context, id int) (models.Inbound, error) {
	a.logger.Infof("Getting inbound %d...", id)

	resp, err := a.transport.Get(ctx, fmt.Sprintf(constants.EndpointInboundGetTemplate, id))
	if err != nil {
		a.logger.Errorf("Get inbound %d failed: %v", id, err)
		return models.Inbound{}, err
	}

	var inbound models.Inbound
	if err := models.InboundSchema().Decode(resp.Obj, &inbound); err != nil {
		a.logger.Errorf("Failed to decode inbound %d: %v", id, err)
		return models.Inbound{}, err
	}

	a.logger.Infof("Inbound %d retrieved successfully.", id)
	return inbound, nil
}

// addClientRequest is the body of the addClient endpoint. Settings holds the
// inbound settings fragment with the new clients, as JSON text.
type addClientRequest struct {
	ID       int    `json:"id"`
	Settings string `json:"settings"`
}

// AddClient appends client to the clients of an inbound
func (a *InboundAPI) AddClient(ctx context.Context, inboundID int, client models.Client) error {
	settings, err := json.Marshal(map[string][]models.Client{models.SettingsClients: {client}})
	if err != nil {
		return fmt.Errorf("failed to encode client %s: %w", client.Email, err)
	}

	a.logger.Infof("Adding client %s to inbound %d...", client.Email, inboundID)
	a.logger.Debugf("Client settings: %s", settings)

	body := addClientRequest{ID: inboundID, Settings: string(settings)}
	if _, err := a.transport.Post(ctx, constants.EndpointInboundAddClient, body); err != nil {
		a.logger.Errorf("Add client %s failed: %v", client.Email, err)
		return err
	}

	a.logger.Infof("Client %s added to inbound %d successfully.", client.Email, inboundID)
	return nil
}

// ResetClientTraffic zeroes the up/down counters of the client with email
func (a *InboundAPI) ResetClientTraffic(ctx context.Context, inboundID int, email string) error {
	a.logger.Infof("Resetting traffic of %s in inbound %d...", email, inboundID)

	endpoint := fmt.Sprintf(constants.EndpointInboundResetClient, inboundID, url.PathEscape(email))
	if _, err := a.transport.Post(ctx, endpoint, emptyPayload()); err != nil {
		a.logger.Errorf("Reset traffic of %s failed: %v", email, err)
		return err
	}

	a.logger.Infof("Traffic of %s reset successfully.", email)
	return nil
}
