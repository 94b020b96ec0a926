package menu

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// BrowserAction is a bookmark opened with the default browser.
type BrowserAction struct {
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
	URL   string `json:"url" yaml:"url"`
	Label string `json:"label" yaml:"label"`
}

// ValidateBrowserActions requires an absolute URL and a label on each action.
func ValidateBrowserActions(actions []BrowserAction) error {
	var errs []error
	for i, action := range actions {
		idx := strconv.Itoa(i)
		u, err := url.Parse(action.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, &ValidationError{
				Path:    []string{"browser-actions", idx, "url"},
				Message: fmt.Sprintf("invalid url %q", action.URL),
			})
		}
		if strings.TrimSpace(action.Label) == "" {
			errs = append(errs, &ValidationError{
				Path:    []string{"browser-actions", idx, "label"},
				Message: "label must not be empty",
			})
		}
	}
	return errors.Join(errs...)
}

// CloneBrowserActions copies an action slice.
func CloneBrowserActions(actions []BrowserAction) []BrowserAction {
	if actions == nil {
		return nil
	}
	return append([]BrowserAction(nil), actions...)
}

// ParseBrowserActions decodes a JSON or YAML list of actions and validates it.
func ParseBrowserActions(data []byte) ([]BrowserAction, error) {
	var actions []BrowserAction
	if err := yaml.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("decode browser actions: %w", err)
	}
	if err := ValidateBrowserActions(actions); err != nil {
		return nil, err
	}
	return actions, nil
}
