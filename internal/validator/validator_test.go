package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type labelTarget struct {
	Kind string `binding:"required,entity_kind"`
}

func TestEntityKind(t *testing.T) {
	Register()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("expected go-playground validator engine")
	}

	tests := []struct {
		kind  string
		valid bool
	}{
		{"deal", true},
		{"cashflow", true},
		{"swap", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			v.SetTagName("binding")
			err := v.Struct(labelTarget{Kind: tt.kind})
			if (err == nil) != tt.valid {
				t.Errorf("entity_kind(%q): valid=%v, err=%v", tt.kind, tt.valid, err)
			}
		})
	}
}
