// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"image"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/jzbor/raw-to-img/internal/raw"
	"github.com/jzbor/raw-to-img/pkg/types"
)

const sidecarSuffix = ".yaml"

// Sidecar is the metadata file written next to a converted output.
type Sidecar struct {
	Source       string `yaml:"source"`
	CameraMake   string `yaml:"camera_make,omitempty"`
	CameraModel  string `yaml:"camera_model,omitempty"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Format       string `yaml:"format"`
	ConvertedAt  string `yaml:"converted_at"`
	DecodeMillis int64  `yaml:"decode_ms"`
	EncodeMillis int64  `yaml:"encode_ms"`
}

// writeSidecar records provenance for one conversion. Camera metadata is
// best-effort: a source file without readable EXIF tags still gets a sidecar.
func writeSidecar(rec types.FileRecord, format types.OutputFormat, bounds image.Rectangle) error {
	meta, _ := raw.ReadMetaFile(rec.Input)

	sc := Sidecar{
		Source:       rec.Input,
		CameraMake:   meta.Make,
		CameraModel:  meta.Model,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Format:       string(format),
		ConvertedAt:  time.Now().UTC().Format(time.RFC3339),
		DecodeMillis: rec.DecodeTime.Milliseconds(),
		EncodeMillis: rec.EncodeTime.Milliseconds(),
	}

	data, err := yaml.Marshal(&sc)
	if err != nil {
		return err
	}
	return os.WriteFile(rec.Output+sidecarSuffix, data, 0o644)
}
