package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"xui-panel-client/internal/config"
	xerrors "xui-panel-client/internal/errors"
	"xui-panel-client/internal/helpers"
	"xui-panel-client/internal/models"
	"xui-panel-client/internal/wire"
	"xui-panel-client/pkg/xuiclient"
)

// PanelService manages the panel API client for a single panel
type PanelService struct {
	client *xuiclient.Client
	config config.PanelConfig
	logger logrus.FieldLogger
}

// NewPanelService creates a new panel service
func NewPanelService(cfg config.PanelConfig, logger logrus.FieldLogger) *PanelService {
	return &PanelService{
		client: xuiclient.NewClient(cfg, logger),
		config: cfg,
		logger: logger,
	}
}

// GetSettings gets the panel settings
func (s *PanelService) GetSettings(ctx context.Context) (models.PanelSettings, error) {
	return s.client.Settings.GetAll(ctx)
}

// ApplySettings reads the settings, applies the KEY=VALUE assignments and
// writes them back. Keys may use wire or semantic names.
func (s *PanelService) ApplySettings(ctx context.Context, assignments []string) (models.PanelSettings, error) {
	if len(assignments) == 0 {
		return models.PanelSettings{}, fmt.Errorf("no settings to change")
	}

	settings, err := s.client.Settings.GetAll(ctx)
	if err != nil {
		return models.PanelSettings{}, err
	}

	for _, assignment := range assignments {
		key, raw, err := ParseAssignment(assignment)
		if err != nil {
			return models.PanelSettings{}, err
		}
		if err := assign(&settings, key, raw); err != nil {
			return models.PanelSettings{}, err
		}
		s.logger.Debugf("Setting %s to %s", key, raw)
	}

	if err := s.client.Settings.Update(ctx, settings); err != nil {
		return models.PanelSettings{}, err
	}
	return settings, nil
}

// RestartPanel restarts the panel, waiting at most until ctx is done
func (s *PanelService) RestartPanel(ctx context.Context) error {
	_, err := s.client.AsyncSettings.RestartPanel(ctx).Await(ctx)
	return err
}

// GetInbounds gets the inbounds from the panel
func (s *PanelService) GetInbounds(ctx context.Context) ([]models.Inbound, error) {
	return s.client.Inbounds.GetList(ctx)
}

// GetInbound gets a single inbound from the panel
func (s *PanelService) GetInbound(ctx context.Context, id int) (models.Inbound, error) {
	return s.client.Inbounds.GetByID(ctx, id)
}

// AddClient provisions a new client on an inbound, choosing its credential
// from the inbound protocol. configure may adjust limits before submission.
func (s *PanelService) AddClient(ctx context.Context, inboundID int, email string, configure func(*models.Client)) (models.Client, error) {
	inbound, err := s.client.Inbounds.GetByID(ctx, inboundID)
	if err != nil {
		return models.Client{}, err
	}
	if _, exists := inbound.Settings.FindClient(email); exists {
		return models.Client{}, fmt.Errorf("client %s already exists in inbound %d", email, inboundID)
	}

	client := models.NewClientFor(inbound.Protocol, email)
	if configure != nil {
		configure(&client)
	}

	if err := s.client.Inbounds.AddClient(ctx, inboundID, client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// ResetClientTraffic zeroes the traffic counters of a client
func (s *PanelService) ResetClientTraffic(ctx context.Context, inboundID int, email string) error {
	return s.client.Inbounds.ResetClientTraffic(ctx, inboundID, email)
}

// GetSubscriptionURL builds the subscription link of subID from the panel settings
func (s *PanelService) GetSubscriptionURL(ctx context.Context, subID string, jsonFormat bool) (string, error) {
	settings, err := s.client.Settings.GetAll(ctx)
	if err != nil {
		return "", err
	}
	if !settings.SubEnable {
		s.logger.Warn("Subscription service is disabled on the panel")
	}

	if jsonFormat {
		return helpers.JSONSubscriptionURL(settings, s.config.Host, subID)
	}
	return helpers.SubscriptionURL(settings, s.config.Host, subID)
}

// assign sets one field. A bare value rejected by the field is retried as a
// string, so tgBotChatId=123456789 or webDomain=null keep their text.
func assign(settings *models.PanelSettings, key string, raw json.RawMessage) error {
	err := settings.Set(key, raw)
	if err == nil || !errors.Is(err, xerrors.ErrTypeMismatch) || wire.IsText(raw) {
		return err
	}

	quoted, qerr := json.Marshal(string(raw))
	if qerr != nil {
		return err
	}
	if settings.Set(key, quoted) != nil {
		return err
	}
	return nil
}

// ParseAssignment splits KEY=VALUE. VALUE is taken as JSON when it parses,
// otherwise as a plain string.
func ParseAssignment(assignment string) (string, json.RawMessage, error) {
	key, value, ok := strings.Cut(assignment, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid assignment %q, expected KEY=VALUE", assignment)
	}

	if json.Valid([]byte(value)) {
		return key, json.RawMessage(value), nil
	}

	quoted, err := json.Marshal(value)
	if err != nil {
		return "", nil, err
	}
	return key, quoted, nil
}
