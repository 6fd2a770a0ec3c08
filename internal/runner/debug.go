package runner

import (
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/louarianne/xq"
)

// debugDocument logs the resolved document when debug logging is enabled.
func (r *Runner) debugDocument(root *etree.Element) {
	if !r.log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	serialized, err := xq.ElementToString(root)
	if err != nil {
		r.log.Debugf("failed to serialize document: %v", err)
		return
	}

	r.log.WithField("doc", serialized).Debug("document loaded")
}
