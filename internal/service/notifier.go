package service

import (
	"fruitshop/basket/internal/render"

	log "github.com/sirupsen/logrus"
)

// Notifier receives the transient feedback a basket UI shows: banners and
// the item count badge.
type Notifier interface {
	Success(message string)
	Error(message string)
	Clear()
	BasketChanged(count int)
}

type logNotifier struct {
	logger log.FieldLogger
}

// NewLogNotifier reports feedback through the application log
func NewLogNotifier() Notifier {
	return logNotifier{logger: log.StandardLogger()}
}

func (n logNotifier) Success(message string) {
	n.logger.Infof("✅ %s", message)
}

func (n logNotifier) Error(message string) {
	n.logger.Warnf("❌ %s", message)
}

func (logNotifier) Clear() {}

func (n logNotifier) BasketChanged(count int) {
	badge := render.Indicator(count)
	if badge == "" {
		n.logger.Debug("🧺 Basket is empty, indicator hidden")
		return
	}
	n.logger.Debugf("🧺 Basket indicator shows %s", badge)
}
