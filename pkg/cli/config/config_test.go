package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/horae/pkg/cli/config"
)

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name: "valid configuration",
			content: `
timezone = "Asia/Tokyo"

[[link]]
label = "社内ポータル"
url = "https://portal.example.com"
order = 1

[[link]]
label = "勤怠"
url = "https://kintai.example.com"
order = 2
enabled = false
`,
			wantErr: nil,
		},
		{
			name:    "empty file is valid",
			content: "\n",
			wantErr: nil,
		},
		{
			name:    "config file not found",
			content: "", // Won't create the file
			wantErr: config.ErrConfigNotFound,
		},
		{
			name: "missing label",
			content: `
[[link]]
url = "https://example.com"
`,
			wantErr: config.ErrMissingLabel,
		},
		{
			name: "missing url",
			content: `
[[link]]
label = "Portal"
`,
			wantErr: config.ErrMissingURL,
		},
		{
			name: "relative url",
			content: `
[[link]]
label = "Portal"
url = "/internal/portal"
`,
			wantErr: config.ErrInvalidURL,
		},
		{
			name: "duplicate label",
			content: `
[[link]]
label = "Portal"
url = "https://a.example.com"

[[link]]
label = "Portal"
url = "https://b.example.com"
`,
			wantErr: config.ErrDuplicateLabel,
		},
		{
			name: "unknown timezone",
			content: `
timezone = "Asia/Edo"
`,
			wantErr: config.ErrInvalidTimezone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.toml")

			// Only create file if content is not empty
			if tt.content != "" {
				err := os.WriteFile(configPath, []byte(tt.content), 0644)
				gt.NoError(t, err).Required()
			}

			cfg, err := config.LoadAppConfiguration(configPath)

			if tt.wantErr != nil {
				gt.Value(t, err).NotNil()
				if err != nil {
					gt.Error(t, err).Is(tt.wantErr)
				}
				return
			}

			gt.NoError(t, err)
			gt.Value(t, cfg).NotNil()
		})
	}
}

func TestAppConfigStaticLinks(t *testing.T) {
	content := `
[[link]]
label = "Portal"
url = "https://portal.example.com"
order = 2

[[link]]
label = "Disabled"
url = "https://off.example.com"
order = 1
enabled = false

[[link]]
label = "Explicit"
url = "https://on.example.com"
order = 3
enabled = true
`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	err := os.WriteFile(configPath, []byte(content), 0644)
	gt.NoError(t, err).Required()

	cfg, err := config.LoadAppConfiguration(configPath)
	gt.NoError(t, err).Required()

	links := cfg.StaticLinks()
	gt.Array(t, links).Length(2).Required()
	gt.Value(t, links[0].Label).Equal("Portal")
	gt.Value(t, links[0].Order).Equal(2)
	gt.Value(t, links[1].Label).Equal("Explicit")
}
