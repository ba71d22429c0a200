package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

var expandFuncs = template.FuncMap{
	// {{ env "DB_PASSWORD" }}
	"env": os.Getenv,
	// {{ exec "pass show db/orders" }}, pipes are run through sh
	"exec": func(line string) (string, error) {
		if strings.Contains(line, " | ") {
			out, err := exec.Command("sh", "-c", line).Output()
			return strings.TrimSpace(string(out)), err
		}

		fields := strings.Fields(line)
		if len(fields) < 1 {
			return "", errors.New("no command provided")
		}

		out, err := exec.Command(fields[0], fields[1:]...).Output()
		return strings.TrimSpace(string(out)), err
	},
}

func expand(value string) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}

	tmpl, err := template.New("expand_variables").Funcs(expandFuncs).Parse(value)
	if err != nil {
		return "", fmt.Errorf("template.Parse: %w", err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", fmt.Errorf("tmpl.Execute: %w", err)
	}

	return out.String(), nil
}
