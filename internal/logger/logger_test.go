package logger

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "", MaskEmail(""))
	assert.Equal(t, "ja...e@blackstone.edu", MaskEmail("jane.doe@blackstone.edu"))
	assert.Equal(t, "*@b.edu", MaskEmail("a@b.edu"))
	assert.Equal(t, "no...il", MaskEmail("not-an-email"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******4567", MaskPhone("(212) 123 4567"))
	assert.Equal(t, "***", MaskPhone("123"))
}

func TestMaskSensitiveString(t *testing.T) {
	assert.Equal(t, "****", MaskSensitiveString("abcd", 2, 2))
	assert.Equal(t, "ab...gh", MaskSensitiveString("abcdefgh", 2, 2))
}

func TestMaskMultibyte(t *testing.T) {
	masked := MaskEmail("aéxyzw@blackstone.edu")
	assert.Equal(t, "aé...w@blackstone.edu", masked)
	assert.True(t, utf8.ValidString(masked))

	assert.Equal(t, "*****", MaskSensitiveString("éééé€", 2, 1))
	assert.Equal(t, "日本...語", MaskSensitiveString("日本の標準語", 2, 1))
}

func TestBuild_Levels(t *testing.T) {
	l, err := Build(Options{Level: "debug", Environment: EnvironmentTest})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = Build(Options{Level: "bogus", Environment: EnvironmentProduction})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}
