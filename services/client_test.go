package services

import "testing"

func TestValidateIdentificacion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"cedula 10 digits", "1712345678", false},
		{"ruc 13 digits", "1712345678001", false},
		{"too short", "123456789", true},
		{"between lengths", "17123456789", true},
		{"too long", "17123456780012", true},
		{"letters", "17123A5678", true},
		{"empty", "", true},
		{"dashes", "171234-678", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentificacion(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateIdentificacion(%q) = nil, want error", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateIdentificacion(%q) = %v, want nil", tt.input, err)
			}
			if err != nil {
				if e := AsError(err); e == nil || e.Kind != KindValidation {
					t.Errorf("ValidateIdentificacion(%q) kind = %v, want validation", tt.input, err)
				}
			}
		})
	}
}
