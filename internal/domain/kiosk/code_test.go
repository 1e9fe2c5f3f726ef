package kiosk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Code
		wantErr bool
	}{
		{"employee code", "E-5", Code{Role: RoleEmployee, Number: 5}, false},
		{"member code", "310", Code{Role: RoleMember, Number: 310}, false},
		{"lowercase prefix", "e-12", Code{Role: RoleEmployee, Number: 12}, false},
		{"surrounding whitespace", "  310  ", Code{Role: RoleMember, Number: 310}, false},
		{"whitespace employee", " e-5 ", Code{Role: RoleEmployee, Number: 5}, false},
		{"letters", "abc", Code{}, true},
		{"empty", "", Code{}, true},
		{"whitespace only", "   ", Code{}, true},
		{"bare prefix", "E-", Code{}, true},
		{"prefix with letters", "E-abc", Code{}, true},
		{"negative member", "-3", Code{}, true},
		{"mixed", "31a", Code{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCode(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "E-5", FormatCode(Code{Role: RoleEmployee, Number: 5}))
	assert.Equal(t, "310", FormatCode(Code{Role: RoleMember, Number: 310}))
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"E-5", "310", "E-0", "7"} {
		code, err := ParseCode(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, FormatCode(code))
	}
}
