package helpers

import (
	"fmt"
	"net/url"
	"strings"

	"xui-panel-client/internal/models"
)

// SubscriptionURL builds the subscription link of subID the way the panel
// advertises it: the configured subURI when set, otherwise an address derived
// from the subscription listener settings. panelHost supplies the domain
// when subDomain is empty.
func SubscriptionURL(settings models.PanelSettings, panelHost string, subID string) (string, error) {
	if settings.SubURI != "" {
		return joinURI(settings.SubURI, subID), nil
	}
	return listenerURL(settings, settings.SubPath, panelHost, subID)
}

// JSONSubscriptionURL builds the JSON subscription link of subID
func JSONSubscriptionURL(settings models.PanelSettings, panelHost string, subID string) (string, error) {
	if settings.SubJSONURI != "" {
		return joinURI(settings.SubJSONURI, subID), nil
	}
	return listenerURL(settings, settings.SubJSONPath, panelHost, subID)
}

func listenerURL(settings models.PanelSettings, path, panelHost, subID string) (string, error) {
	if subID == "" {
		return "", fmt.Errorf("subscription id is empty")
	}

	domain := settings.SubDomain
	if domain == "" {
		u, err := url.Parse(panelHost)
		if err != nil || u.Hostname() == "" {
			return "", fmt.Errorf("cannot derive subscription domain from %q", panelHost)
		}
		domain = u.Hostname()
	}

	scheme := "http"
	if settings.SubCertFile != "" && settings.SubKeyFile != "" {
		scheme = "https"
	}

	host := domain
	if !(scheme == "http" && settings.SubPort == 80) && !(scheme == "https" && settings.SubPort == 443) {
		host = fmt.Sprintf("%s:%d", domain, settings.SubPort)
	}

	return fmt.Sprintf("%s://%s%s%s", scheme, host, normalizePath(path), url.PathEscape(subID)), nil
}

func joinURI(uri, subID string) string {
	if !strings.HasSuffix(uri, "/") {
		uri += "/"
	}
	return uri + url.PathEscape(subID)
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
