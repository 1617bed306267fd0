package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies the inputs of one static build. When RenderHash
// matches the previous build, the output directory is already current.
type Fingerprint struct {
	ContentHash  string `json:"content"`
	DataHash     string `json:"data"`
	ThemeHash    string `json:"theme"`
	ConfigHash   string `json:"config"`
	RendererHash string `json:"renderer"`
	RenderHash   string `json:"render"`
}

func (f *Fingerprint) ComputeRenderHash() {
	h := sha256.New()
	for _, part := range []string{f.ContentHash, f.DataHash, f.ThemeHash, f.ConfigHash, f.RendererHash} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	f.RenderHash = hex.EncodeToString(h.Sum(nil))
}

func (f Fingerprint) Same(other Fingerprint) bool {
	return f.RenderHash != "" && f.RenderHash == other.RenderHash
}
