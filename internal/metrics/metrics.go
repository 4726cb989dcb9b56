package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var FanoutDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "forkful_fanout_deliveries_total",
	Help: "Feed entry deliveries to target indexes, by result.",
}, []string{"result"})

var BackgroundTasks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "forkful_background_tasks_total",
	Help: "Fire-and-forget tasks processed, by task name and result.",
}, []string{"task", "result"})

var FeedReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "forkful_feed_reads_total",
	Help: "Feed page reads, by result.",
}, []string{"result"})

var HydrationSkips = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "forkful_hydration_skips_total",
	Help: "Feed items dropped during hydration, by reason.",
}, []string{"reason"})
