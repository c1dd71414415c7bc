package xuiclient

import (
	"context"

	"github.com/sirupsen/logrus"

	"xui-panel-client/internal/constants"
	"xui-panel-client/internal/models"
)

// SettingAPI reads and writes the panel settings. Calls block until the
// transport returns.
type SettingAPI struct {
	transport Transport
	logger    logrus.FieldLogger
}

// NewSettingAPI creates a settings API over the given transport
func NewSettingAPI(transport Transport, logger logrus.FieldLogger) *SettingAPI {
	return &SettingAPI{
		transport: transport,
		logger:    logger,
	}
}

// GetAll returns every panel setting; keys missing from the response take
// their defaults.
func (a *SettingAPI) GetAll(ctx context.Context) (models.PanelSettings, error) {
	a.logger.Info("Getting all settings...")

	resp, err := a.transport.Post(ctx, constants.EndpointSettingAll, emptyPayload())
	if err != nil {
		a.logger.Errorf("Get all settings failed: %v", err)
		return models.PanelSettings{}, err
	}

	var settings models.PanelSettings
	if err := models.PanelSettingsSchema().Decode(resp.Obj, &settings); err != nil {
		a.logger.Errorf("Failed to decode settings: %v", err)
		return models.PanelSettings{}, err
	}

	a.logger.Info("All settings retrieved successfully.")
	return settings, nil
}

// Update submits settings to the panel using wire field names
func (a *SettingAPI) Update(ctx context.Context, settings models.PanelSettings) error {
	body, err := models.PanelSettingsSchema().Encode(&settings)
	if err != nil {
		return err
	}

	a.logger.Info("Updating settings...")
	a.logger.Debugf("Request body: %s", body)

	if _, err := a.transport.Post(ctx, constants.EndpointSettingUpdate, rawPayload(body)); err != nil {
		a.logger.Errorf("Update settings failed: %v", err)
		return err
	}

	a.logger.Info("Settings updated successfully.")
	return nil
}

// RestartPanel asks the panel to restart itself
func (a *SettingAPI) RestartPanel(ctx context.Context) error {
	a.logger.Info("Restarting panel...")

	if _, err := a.transport.Post(ctx, constants.EndpointSettingRestart, emptyPayload()); err != nil {
		a.logger.Errorf("Restart panel failed: %v", err)
		return err
	}

	a.logger.Info("Panel restarted successfully.")
	return nil
}

// rawPayload is an already encoded JSON body
type rawPayload []byte

// MarshalJSON returns the payload unchanged
func (p rawPayload) MarshalJSON() ([]byte, error) {
	return p, nil
}

func emptyPayload() map[string]any {
	return map[string]any{}
}
