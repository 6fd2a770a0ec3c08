package xq

import (
	"sync"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/louarianne/xq/internal/logging"
)

var (
	loggerMu sync.Mutex
	logger   = logrus.StandardLogger()
)

// SetLogger replaces the logger used by LogElement. The default is the
// logrus standard logger.
func SetLogger(log *logrus.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	logger = log
}

// ElementToString returns the selected element serialized as XML. The
// result never carries an XML declaration, so serializing a parsed
// document returns just its root element.
func ElementToString(src any, opts ...Option) (string, error) {
	el, err := GetElement(src, opts...)
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())

	return doc.WriteToString()
}

// LogElement serializes the selected element, logs it at the severity
// given by the Level option and returns the serialized string.
func LogElement(src any, opts ...Option) (string, error) {
	o := newOptions(opts)

	serialized, err := ElementToString(src, opts...)
	if err != nil {
		return "", err
	}

	level, err := logging.ParseLevel(o.level)
	if err != nil {
		return "", err
	}

	loggerMu.Lock()
	log := logger
	loggerMu.Unlock()

	log.Log(level, serialized)

	return serialized, nil
}
