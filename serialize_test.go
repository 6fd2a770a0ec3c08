package xq

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementToString(t *testing.T) {
	serialized, err := ElementToString(`<a id='1'>x<b/>y</a>`)
	require.NoError(t, err)
	assert.Equal(t, `<a id="1">x<b/>y</a>`, serialized)
}

func TestElementToStringStripsDeclaration(t *testing.T) {
	serialized, err := ElementToString("<?xml version='1.0' encoding='UTF-8'?>\n<a>x</a>")
	require.NoError(t, err)
	assert.Equal(t, "<a>x</a>", serialized)
}

func TestElementToStringSelected(t *testing.T) {
	serialized, err := ElementToString("<r><a>T</a>tail</r>", XPath("a"))
	require.NoError(t, err)
	assert.Equal(t, "<a>T</a>", serialized)
}

func TestElementToStringLeavesSourceIntact(t *testing.T) {
	el, err := Parse("<r><a>T</a></r>")
	require.NoError(t, err)

	_, err = ElementToString(el, XPath("a"))
	require.NoError(t, err)

	children, err := GetChildElements(el)
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestElementToStringRoundTrip(t *testing.T) {
	source := `<root><item id="1">A</item>between<item id="2">B</item></root>`

	serialized, err := ElementToString(source)
	require.NoError(t, err)
	assert.NoError(t, ElementsShouldBeEqual(source, serialized))
}

func TestElementToStringRoundTripTrailingNewline(t *testing.T) {
	parsed, err := Parse("<a>x</a>\n")
	require.NoError(t, err)

	serialized, err := ElementToString(parsed)
	require.NoError(t, err)
	assert.Equal(t, "<a>x</a>", serialized)

	assert.NoError(t, ElementsShouldBeEqual(parsed, serialized))
}

func TestLogElement(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	SetLogger(log)
	t.Cleanup(func() { SetLogger(logrus.StandardLogger()) })

	serialized, err := LogElement("<a>x</a>", Level("warn"))
	require.NoError(t, err)
	assert.Equal(t, "<a>x</a>", serialized)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "<a>x</a>", hook.LastEntry().Message)
}

func TestLogElementDefaultsToInfo(t *testing.T) {
	log, hook := test.NewNullLogger()
	SetLogger(log)
	t.Cleanup(func() { SetLogger(logrus.StandardLogger()) })

	_, err := LogElement("<a/>")
	require.NoError(t, err)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestLogElementInvalidLevel(t *testing.T) {
	_, err := LogElement("<a/>", Level("loud"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log level")
}
