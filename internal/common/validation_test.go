package common

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUUID(t *testing.T) {
	valid := uuid.New()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "valid", input: valid.String()},
		{name: "valid with whitespace", input: "  " + valid.String() + " "},
		{name: "empty", input: "", wantErr: "id is required"},
		{name: "blank", input: "   ", wantErr: "id is required"},
		{name: "too short", input: "1234", wantErr: "exactly 36 characters"},
		{name: "hyphens misplaced", input: "1234567-89012-3456-7890-1234567890ab", wantErr: "hyphens must be at positions"},
		{name: "bad characters", input: "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", wantErr: "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ValidateUUID(tt.input, "id")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid, id)
		})
	}
}
