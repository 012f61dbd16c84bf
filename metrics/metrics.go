package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RegistrationsCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "registrations_created_total",
	Help: "Number of registrations submitted through the public form",
})

var FinanceRecordsCreatedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "finance_records_created_total",
	Help: "Number of finance records created, by type",
}, []string{"type"})

var FinanceSyncBackfillCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "finance_sync_backfilled_total",
	Help: "Number of finance records backfilled by the registration sync",
})

var EmailsSentCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "emails_sent_total",
	Help: "Number of bulk emails delivered to the relay",
})

var EmailsFailedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "emails_failed_total",
	Help: "Number of bulk emails the relay rejected",
})

var ScheduleGenerationCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "schedule_generations_total",
	Help: "Number of AI schedule generation calls, by outcome",
}, []string{"outcome"})
