package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/buildnotice/pkg/cli"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	argv := append([]string{"buildnotice", "--log-level", "error"}, args...)
	err := cli.RunForTest(context.Background(), argv, strings.NewReader(stdin), &out)
	return out.String(), err
}

type extractLine struct {
	Input       string         `json:"input"`
	Suggestions map[string]any `json:"suggestions"`
}

func decodeLines(t *testing.T, out string) []extractLine {
	t.Helper()
	var lines []extractLine
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var l extractLine
		gt.NoError(t, dec.Decode(&l)).Required()
		lines = append(lines, l)
	}
	return lines
}

func TestRun_ExtractCommand(t *testing.T) {
	t.Run("arguments", func(t *testing.T) {
		out, err := runCLI(t, "", "extract",
			"Part ABC-123, Rev A, quantity 100",
			"urgent, need by 2024-12-25",
		)
		gt.NoError(t, err).Required()

		lines := decodeLines(t, out)
		gt.Array(t, lines).Length(2)
		gt.Value(t, lines[0].Suggestions["part_number"]).Equal(any("ABC-123"))
		gt.Value(t, lines[0].Suggestions["quantity"]).Equal(any(float64(100)))
		gt.Value(t, lines[1].Suggestions["priority"]).Equal(any("urgent"))
		gt.Value(t, lines[1].Suggestions["required_by"]).Equal(any("2024-12-25"))
	})

	t.Run("input file skips blank lines", func(t *testing.T) {
		path := writeFile(t, "in.txt", "Part ABC-123\n\n  \nRev B\n")
		out, err := runCLI(t, "", "extract", "--input-file", path, "--concurrency", "1")
		gt.NoError(t, err).Required()

		lines := decodeLines(t, out)
		gt.Array(t, lines).Length(2)
		gt.Value(t, lines[1].Input).Equal("Rev B")
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := runCLI(t, "qty 5\n", "extract", "-i", "-")
		gt.NoError(t, err).Required()
		lines := decodeLines(t, out)
		gt.Array(t, lines).Length(1)
		gt.Value(t, lines[0].Suggestions["quantity"]).Equal(any(float64(5)))
	})

	t.Run("no input", func(t *testing.T) {
		_, err := runCLI(t, "", "extract")
		gt.Value(t, err).NotNil()
	})
}

const validNotice = `
npi_number = "NPI-2024-001"
part_number = "ABC-123"
revision = "A"
description = "Controller board pilot run"
quantity = 100
build_date = 2024-12-01
assembly_location = "Building 5"
required_by = 2024-12-25
project = "Orion"
`

func TestRun_ValidateCommand(t *testing.T) {
	t.Run("valid notice", func(t *testing.T) {
		path := writeFile(t, "notice.toml", validNotice)
		out, err := runCLI(t, "", "validate", "--notice-file", path)
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("valid")
	})

	t.Run("invalid notice lists failures", func(t *testing.T) {
		path := writeFile(t, "notice.toml", "part_number = \"ABC-123\"\nquantity = 0\n")
		out, err := runCLI(t, "", "validate", "-f", path)
		gt.Error(t, err).Is(cli.ErrInvalidNotice)
		gt.String(t, out).Contains("Quantity must be greater than 0")
		gt.String(t, out).Contains("NPI Number is required")
	})

	t.Run("submit prints notice with catalog fill", func(t *testing.T) {
		path := writeFile(t, "notice.toml", validNotice)
		out, err := runCLI(t, "", "validate", "-f", path, "--submit")
		gt.NoError(t, err).Required()

		var notice map[string]any
		gt.NoError(t, json.Unmarshal([]byte(out), &notice)).Required()
		gt.Value(t, notice["status"]).Equal(any("submitted"))
		gt.Value(t, notice["model"]).Equal(any("OR-200"))
	})

	t.Run("custom catalog", func(t *testing.T) {
		catalog := writeFile(t, "catalog.toml", "[[project]]\nname = \"Orion\"\nmodel = \"OR-900\"\n")
		path := writeFile(t, "notice.toml", validNotice)
		out, err := runCLI(t, "", "validate", "-f", path, "--submit", "--project-catalog", catalog)
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("OR-900")
	})

	t.Run("unknown field in file", func(t *testing.T) {
		path := writeFile(t, "notice.toml", "serial = \"SN-1\"\n")
		_, err := runCLI(t, "", "validate", "-f", path)
		gt.Value(t, err).NotNil()
	})
}

func TestRun_FillCommand(t *testing.T) {
	t.Run("complete session", func(t *testing.T) {
		script := strings.Join([]string{
			"NPI-2024-001, Part ABC-123, Rev A, build 100 units",
			"urgent, need by 2024-12-25",
			":set description Controller board pilot run",
			":set build_date 2024-12-01",
			":set assembly_location Building 5",
			":set project Orion",
			":show",
			":submit",
			":events",
			":quit",
			"this line is never read",
		}, "\n")

		out, err := runCLI(t, script, "fill")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("I've extracted the following information")
		gt.String(t, out).Contains("OR-200")
		gt.String(t, out).Contains("Submitted BN-")
		gt.String(t, out).Contains("form_submit")
	})

	t.Run("rejected submission and input mistakes", func(t *testing.T) {
		script := strings.Join([]string{
			":set serial SN-1",
			":bogus",
			":set quantity 0",
			":submit",
		}, "\n")

		out, err := runCLI(t, script, "fill")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains(`unknown field "serial"`)
		gt.String(t, out).Contains("unknown command :bogus")
		gt.String(t, out).Contains("Quantity must be greater than 0")
		gt.String(t, out).Contains("Submission rejected")
	})

	t.Run("review keeps suggestions pending", func(t *testing.T) {
		script := strings.Join([]string{
			"Part XYZ-456",
			":show",
			":apply",
			":show",
		}, "\n")

		out, err := runCLI(t, script, "fill", "--review")
		gt.NoError(t, err).Required()
		// printed once as a suggestion and once by the second :show
		gt.Number(t, strings.Count(out, "XYZ-456")).Equal(2)
	})

	t.Run("reset starts a new notice", func(t *testing.T) {
		out, err := runCLI(t, ":reset\n", "fill")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("Started build notice BN-")
	})
}
