package request

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reusedev/anymotion-cli/internal/consts"
)

func TestParseRule(t *testing.T) {
	rule, err := ParseRule(`[{"drawingType": "stickPicture"}]`)
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"drawingType": "stickPicture"}}, rule)

	rule, err = ParseRule(`{"analysisType": "vectorAngle"}`)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"analysisType": "vectorAngle"}, rule)

	_, err = ParseRule(`{"analysisType": `)
	require.ErrorIs(t, err, ErrRuleJSON)
	require.EqualError(t, err, "Rule format is invalid. Must be in JSON format.")

	for _, text := range []string{`1`, `"rule"`, `null`, `true`} {
		_, err = ParseRule(text)
		require.ErrorIs(t, err, ErrRuleFormat, text)
	}
}

func TestAnalyzeValid(t *testing.T) {
	require.Error(t, (&Analyze{}).Valid())
	require.Error(t, (&Analyze{Rule: "[]", RuleFile: "r.json"}).Valid())
	require.NoError(t, (&Analyze{Rule: "[]"}).Valid())
	require.NoError(t, (&Analyze{RuleFile: "r.json"}).Valid())
}

func TestDrawLoadRule(t *testing.T) {
	rule, err := (&Draw{}).LoadRule()
	require.NoError(t, err)
	require.Nil(t, rule)

	path := filepath.Join(t.TempDir(), "rule.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"pattern": "all"}]`), 0o600))
	rule, err = (&Draw{RuleFile: path}).LoadRule()
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"pattern": "all"}}, rule)

	_, err = (&Draw{RuleFile: filepath.Join(t.TempDir(), "missing.json")}).LoadRule()
	require.Error(t, err)
}

func TestExtractValid(t *testing.T) {
	require.Error(t, (&Extract{}).Valid())
	require.Error(t, (&Extract{ImageID: 1, MovieID: 2}).Valid())
	require.Error(t, (&Extract{ImageID: -1}).Valid())
	require.NoError(t, (&Extract{MovieID: 2}).Valid())
	require.NoError(t, (&Extract{Path: "a.mp4"}).Valid())
}

func TestListStatus(t *testing.T) {
	l := &List{Status: "success"}
	require.NoError(t, l.Valid())
	require.Equal(t, consts.Success, l.ExecStatus())

	require.Error(t, (&List{Status: "done"}).Valid())
	require.NoError(t, (&List{}).Valid())
}
