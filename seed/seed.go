package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/store"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// SettingsKey is the fixed document key of the single settings document.
const SettingsKey = "main"

type payload struct {
	Issuers       []string  `yaml:"issuers"`
	Clients       []string  `yaml:"clients"`
	Provenances   []string  `yaml:"provenances"`
	Destinations  []string  `yaml:"destinations"`
	Plaques       []string  `yaml:"plaques"`
	TypeSols      []string  `yaml:"typeSols"`
	Quantites     []string  `yaml:"quantites"`
	Transporteurs []string  `yaml:"transporteurs"`
	Users         []account `yaml:"users"`
}

type account struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Code        string   `yaml:"code"`
	Role        string   `yaml:"role"`
	Group       string   `yaml:"group"`
	Permissions []string `yaml:"permissions"`
}

// DefaultSettings parses the embedded initial configuration: the dropdown
// option lists and the employee roster the app ships with.
func DefaultSettings() (*model.AppSettings, error) {
	var p payload
	if err := yaml.Unmarshal(defaultsYAML, &p); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}

	settings := &model.AppSettings{
		Issuers:       p.Issuers,
		Clients:       p.Clients,
		Provenances:   p.Provenances,
		Destinations:  p.Destinations,
		Plaques:       p.Plaques,
		TypeSols:      p.TypeSols,
		Quantites:     p.Quantites,
		Transporteurs: p.Transporteurs,
	}
	for _, a := range p.Users {
		user := model.UserAccount{
			ID:    a.ID,
			Name:  a.Name,
			Code:  a.Code,
			Role:  model.Role(a.Role),
			Group: a.Group,
		}
		for _, perm := range a.Permissions {
			user.Permissions = append(user.Permissions, model.Permission(perm))
		}
		settings.Users = append(settings.Users, user)
	}
	return settings, nil
}

// EnsureSettings writes the default settings document when none exists yet.
// Reports whether it seeded.
func EnsureSettings(ctx context.Context, s store.Store) (bool, error) {
	_, err := s.Get(ctx, store.Settings, SettingsKey)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	defaults, err := DefaultSettings()
	if err != nil {
		return false, err
	}
	if err := s.CreateIfAbsent(ctx, store.Settings, SettingsKey, defaults); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			// another instance seeded first
			return false, nil
		}
		return false, err
	}
	return true, nil
}
