// nolint: gochecknoglobals
package idgenerator

import gonanoid "github.com/matoous/go-nanoid/v2"

const RunIDLength = 12

// alphabet used in ID generation.
var alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RunID identifies one export run in logs and traces.
func RunID() string {
	return gonanoid.MustGenerate(alphabet, RunIDLength)
}
