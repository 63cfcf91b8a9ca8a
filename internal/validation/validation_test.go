package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid simple", username: "marcus", wantErr: false},
		{name: "valid with digits and underscore", username: "crew_lead_2", wantErr: false},
		{name: "minimum length", username: "abc", wantErr: false},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: "a123456789012345678901234567890123", wantErr: true},
		{name: "empty", username: "", wantErr: true},
		{name: "spaces", username: "mar cus", wantErr: true},
		{name: "special characters", username: "marcus!", wantErr: true},
		{name: "cyrillic", username: "маркус", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "collection key", key: "greenteam-equipment", wantErr: false},
		{name: "with digits", key: "board-v2", wantErr: false},
		{name: "minimum length", key: "abc", wantErr: false},
		{name: "too short", key: "ab", wantErr: true},
		{name: "empty", key: "", wantErr: true},
		{name: "uppercase", key: "Greenteam-Equipment", wantErr: true},
		{name: "leading dash", key: "-equipment", wantErr: true},
		{name: "slash", key: "greenteam/equipment", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
