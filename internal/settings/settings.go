// Package settings reads the accent color from an editor settings file.
package settings

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
)

// KeyDelimiter separates nested keys. Editor settings keys contain dots
// ("peacock.color"), so a dot cannot be the delimiter.
const KeyDelimiter = "::"

var log = commonlog.GetLogger("accentsync.settings")

// ReadAccent returns the value stored under key in the JSON settings file at
// path. Nested objects are addressed with KeyDelimiter, e.g.
// "workbench.colorCustomizations::activityBar.background".
//
// A missing file, a file that is not valid JSON, a missing key and an empty
// value all report ok == false. None of them is an error.
func ReadAccent(path, key string) (accent string, ok bool) {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		log.Debugf("no accent from %s: %s", path, err)
		return "", false
	}

	accent = strings.TrimSpace(v.GetString(key))
	if accent == "" {
		log.Debugf("no accent from %s: key %q not set", path, key)
		return "", false
	}
	return accent, true
}
