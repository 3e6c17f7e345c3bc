package motion

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/gonewx/anchorflight/pkg/motion"

// transitMetrics 航行计数器
// 未安装 OpenTelemetry SDK 时全部为空操作
type transitMetrics struct {
	started    metric.Int64Counter
	completed  metric.Int64Counter
	superseded metric.Int64Counter
	cancelled  metric.Int64Counter
}

func newTransitMetrics() *transitMetrics {
	meter := otel.Meter(meterName)
	return &transitMetrics{
		started:    newCounter(meter, "transit.started", "航行开始次数"),
		completed:  newCounter(meter, "transit.completed", "航行正常完成次数"),
		superseded: newCounter(meter, "transit.superseded", "航行被新航行取代次数"),
		cancelled:  newCounter(meter, "transit.cancelled", "航行被取消次数"),
	}
}

func newCounter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		log.Printf("[Metrics] 创建计数器 %s 失败: %v", name, err)
		return noop.Int64Counter{}
	}
	return c
}

func (m *transitMetrics) add(ctx context.Context, c metric.Int64Counter) {
	c.Add(ctx, 1)
}
