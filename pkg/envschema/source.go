package envschema

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environ snapshots the process environment.
func Environ() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// ReadDotenv reads KEY=VALUE lines from path. A missing file yields an empty map.
//
// viper folds keys to lower case, so keys are upper-cased on the way out: a
// mixed-case name such as Api_Url comes back as API_URL. Dotted names keep their
// dots. Schema fields are upper-case, so only upper-case names reach a field.
func ReadDotenv(path string) (map[string]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return map[string]string{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("envschema: stat dotenv %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("envschema: read dotenv %s: %w", path, err)
	}

	out := make(map[string]string, len(v.AllKeys()))
	for _, key := range v.AllKeys() {
		out[strings.ToUpper(key)] = v.GetString(key)
	}
	return out, nil
}

// Layer merges environments; later layers override earlier ones.
func Layer(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}
