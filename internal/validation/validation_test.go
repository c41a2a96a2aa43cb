package validation

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateStructAndErrorsToJson(t *testing.T) {
	type Input struct {
		Email string `validate:"required,email"  json:"email"`
		Tags  []int  `validate:"min=1,dive,gt=0" json:"tags"`
	}

	tests := []struct {
		name        string
		in          Input
		wantErr     bool
		wantJsonMap map[string]string
	}{
		{
			name:    "success",
			in:      Input{Email: "a@b.com", Tags: []int{1, 2, 3}},
			wantErr: false,
		},
		{
			name:    "missing email",
			in:      Input{Email: "", Tags: []int{1}},
			wantErr: true,
			wantJsonMap: map[string]string{
				"email": "required",
			},
		},
		{
			name:    "invalid email and empty tags",
			in:      Input{Email: "not-an-email", Tags: []int{}},
			wantErr: true,
			wantJsonMap: map[string]string{
				"email": "email",
				"tags":  "min",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}

			// convert and unmarshal for comparison
			js, jerr := ErrorsToJson(err)
			if jerr != nil {
				t.Fatalf("ErrorsToJson() error = %v", jerr)
			}
			var got map[string]string
			if err := json.Unmarshal([]byte(js), &got); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			for field, tag := range tt.wantJsonMap {
				if got[field] != tag {
					t.Errorf("field %q: got %q, want %q", field, got[field], tag)
				}
			}
		})
	}
}

func TestFolderValidation(t *testing.T) {
	type Input struct {
		Folder string `validate:"required,folder" json:"folder"`
	}

	tests := []struct {
		folder  string
		wantErr bool
	}{
		{"products", false},
		{"catalog/products_2024", false},
		{"cat-egories", false},
		{"", true},
		{"../etc", true},
		{"products/", true},
		{"/products", true},
		{"pro ducts", true},
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			err := ValidateStruct(Input{Folder: tt.folder})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct(%q) err = %v, wantErr %v", tt.folder, err, tt.wantErr)
			}
			if err != nil && tt.folder != "" {
				if got := FieldErrors(err)["folder"]; got != "folder" {
					t.Errorf("tag = %q; want folder", got)
				}
			}
		})
	}
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	if got := FieldErrors(errors.New("boom")); got != nil {
		t.Errorf("FieldErrors(non validation) = %v; want nil", got)
	}
}

func TestValidateVar(t *testing.T) {
	if err := ValidateVar(int64(10), "lte=10"); err != nil {
		t.Errorf("lte=10 on 10: unexpected error %v", err)
	}
	if err := ValidateVar(int64(11), "lte=10"); err == nil {
		t.Error("lte=10 on 11: expected error")
	}
	if err := ValidateVar("image/png", "startswith=image/"); err != nil {
		t.Errorf("startswith on image/png: unexpected error %v", err)
	}
	if err := ValidateVar("", "startswith=image/"); err == nil {
		t.Error("startswith on empty string: expected error")
	}
}
