package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/legal-discovery/backend/internal/db"
)

// settingsKeys defines which keys are allowed and their display metadata
var settingsKeys = []SettingDef{
	{Key: "elevenlabs_api_key", Label: "ElevenLabs API Key", Group: "transcription", Placeholder: "xi-...", Secret: true},
	{Key: "scribe_model_id", Label: "Scribe Model", Group: "transcription", Placeholder: "scribe_v2", Secret: false},
	{Key: "default_language", Label: "Default Language", Group: "transcription", Placeholder: "en", Secret: false},
	{Key: "demo_mode", Label: "Demo Mode", Group: "transcription", Placeholder: "false", Secret: false},
}

type SettingDef struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Group       string `json:"group"`
	Placeholder string `json:"placeholder"`
	Secret      bool   `json:"secret"`
}

const secretMask = "••••••••"

type SettingsHandler struct {
	database *db.Database
}

func NewSettingsHandler(database *db.Database) *SettingsHandler {
	return &SettingsHandler{database: database}
}

// GetSettings returns all settings (secrets are masked)
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.database.GetAllSettings()
	if err != nil {
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	type SettingResponse struct {
		SettingDef
		Value    string `json:"value"`
		HasValue bool   `json:"has_value"`
	}

	result := make([]SettingResponse, 0, len(settingsKeys))
	for _, def := range settingsKeys {
		val := all[def.Key]
		masked := val
		hasValue := val != ""
		if def.Secret && hasValue {
			// Show only last 4 chars
			if len(val) > 4 {
				masked = secretMask + val[len(val)-4:]
			} else {
				masked = secretMask
			}
		}
		result = append(result, SettingResponse{
			SettingDef: def,
			Value:      masked,
			HasValue:   hasValue,
		})
	}

	jsonResponse(w, result, http.StatusOK)
}

// UpdateSettings saves settings from the request body
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Validate keys — only allow known settings
	allowed := make(map[string]bool)
	for _, def := range settingsKeys {
		allowed[def.Key] = true
	}

	for key, value := range updates {
		if !allowed[key] {
			continue
		}
		// A masked value round-tripped from GetSettings must not overwrite
		// the stored secret. An empty value is an explicit clear.
		if strings.HasPrefix(value, secretMask) {
			continue
		}
		if err := h.database.SetSetting(key, value); err != nil {
			jsonError(w, "failed to save setting: "+key, http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
