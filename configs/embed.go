package configs

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.yaml
var embedded embed.FS

// DefaultPolicy returns the embedded default sanitization policy.
func DefaultPolicy() []byte {
	data, err := fs.ReadFile(embedded, "policy.yaml")
	if err != nil {
		// The file is compiled into the binary; a missing entry is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded policy missing: %v", err))
	}
	return data
}
