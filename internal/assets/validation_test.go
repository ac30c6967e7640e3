package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	valid := []string{"default", "light-grid", "my_style2", "Corporate"}
	for _, name := range valid {
		if err := ValidateAssetName(name); err != nil {
			t.Errorf("ValidateAssetName(%q) error = %v, want nil", name, err)
		}
	}

	invalid := []string{
		"",
		"styles/default",
		`styles\default`,
		"..",
		"default.xml",
		"../../etc/passwd",
	}
	for _, name := range invalid {
		if err := ValidateAssetName(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}
