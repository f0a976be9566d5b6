package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrAlertExists   = errors.New("alert already exists")
	ErrAlertNotFound = errors.New("alert not found")
)

type alertsDocument struct {
	Alerts []models.SavedAlert `yaml:"alerts"`
}

// AlertService owns the single-file YAML store of saved alerts.
type AlertService struct {
	alertsFile string
}

func NewAlertService(alertsFile string) *AlertService {
	return &AlertService{alertsFile: alertsFile}
}

func (s *AlertService) List() ([]models.SavedAlert, error) {

	document, err := s.load()
	if err != nil {
		return nil, err
	}

	sort.Slice(document.Alerts, func(i, j int) bool {
		return document.Alerts[i].Name < document.Alerts[j].Name
	})
	return document.Alerts, nil
}

func (s *AlertService) Get(name string) (*models.SavedAlert, error) {

	document, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, alert := range document.Alerts {
		if alert.Name == name {
			return &alert, nil
		}
	}
	return nil, nil
}

func (s *AlertService) EnabledAlerts() ([]models.SavedAlert, error) {

	alerts, err := s.List()
	if err != nil {
		return nil, err
	}

	enabled := alerts[:0]
	for _, alert := range alerts {
		if alert.Enabled {
			enabled = append(enabled, alert)
		}
	}
	return enabled, nil
}

func (s *AlertService) Create(alert models.SavedAlert) error {

	if alert.Name == "" || alert.Name != filepath.Base(alert.Name) {
		return fmt.Errorf("invalid alert name: %q", alert.Name)
	}

	if err := alert.Criteria.Validate(); err != nil {
		return err
	}

	document, err := s.load()
	if err != nil {
		return err
	}

	for _, existing := range document.Alerts {
		if existing.Name == alert.Name {
			return errors.Wrap(ErrAlertExists, alert.Name)
		}
	}

	document.Alerts = append(document.Alerts, alert)
	return s.save(document)
}

func (s *AlertService) SetEnabled(name string, enabled bool) error {

	document, err := s.load()
	if err != nil {
		return err
	}

	for i := range document.Alerts {
		if document.Alerts[i].Name == name {
			document.Alerts[i].Enabled = enabled
			return s.save(document)
		}
	}
	return errors.Wrap(ErrAlertNotFound, name)
}

func (s *AlertService) Delete(name string) error {

	document, err := s.load()
	if err != nil {
		return err
	}

	for i := range document.Alerts {
		if document.Alerts[i].Name == name {
			document.Alerts = append(document.Alerts[:i], document.Alerts[i+1:]...)
			return s.save(document)
		}
	}
	return errors.Wrap(ErrAlertNotFound, name)
}

func (s *AlertService) AlertsFile() string {
	return s.alertsFile
}

func (s *AlertService) load() (alertsDocument, error) {

	data, err := os.ReadFile(s.alertsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return alertsDocument{}, nil
		}
		return alertsDocument{}, err
	}

	var document alertsDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return alertsDocument{}, fmt.Errorf("failed to parse alerts file: %w", err)
	}
	return document, nil
}

func (s *AlertService) save(document alertsDocument) error {

	if dir := filepath.Dir(s.alertsFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(document)
	if err != nil {
		return err
	}
	return os.WriteFile(s.alertsFile, data, 0644)
}
