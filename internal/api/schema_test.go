package api

import "testing"

func TestValidateQuestions(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "valid list",
			payload: `[{"id":1,"prompt":"p","choices":["a","b"],"correct_choice":"a","language":"Spanish"}]`,
			wantErr: false,
		},
		{
			name:    "empty list",
			payload: `[]`,
			wantErr: false,
		},
		{
			name:    "missing prompt",
			payload: `[{"choices":["a","b"],"correct_choice":"a"}]`,
			wantErr: true,
		},
		{
			name:    "single choice",
			payload: `[{"prompt":"p","choices":["a"],"correct_choice":"a"}]`,
			wantErr: true,
		},
		{
			name:    "empty correct choice",
			payload: `[{"prompt":"p","choices":["a","b"],"correct_choice":""}]`,
			wantErr: true,
		},
		{
			name:    "not an array",
			payload: `{"prompt":"p"}`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			payload: `[{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestions([]byte(tt.payload))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuestions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
