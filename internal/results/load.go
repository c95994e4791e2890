package results

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
)

// Load reads a result saved as JSON or YAML. Both the wrapped form
// ({"final_report": ..., "success": ...}) and a bare report are accepted.
func Load(path string) (reconcile.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reconcile.Result{}, errors.Wrap(err, "read report")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) (reconcile.Result, error) {
	if !gjson.ValidBytes(data) {
		return reconcile.Result{}, errors.New("report is not valid JSON")
	}
	if gjson.GetBytes(data, "final_report").Exists() {
		var res reconcile.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "decode result")
		}
		return res, nil
	}
	var r reconcile.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "decode report")
	}
	return reconcile.Result{Report: &r, Success: true}, nil
}

func decodeYAML(data []byte) (reconcile.Result, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "decode yaml")
	}
	if _, ok := probe["final_report"]; ok {
		var res reconcile.Result
		if err := yaml.Unmarshal(data, &res); err != nil {
			return reconcile.Result{}, errors.Wrap(err, "decode result")
		}
		return res, nil
	}
	var r reconcile.Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return reconcile.Result{}, errors.Wrap(err, "decode report")
	}
	return reconcile.Result{Report: &r, Success: true}, nil
}
