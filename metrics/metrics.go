package metrics

import (
	"strconv"
	"sync"

	"nativus/api"
	"nativus/database"
	"nativus/models"
	"nativus/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestCount counts handled HTTP requests by method and route.
var RequestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "nativus_erp_requests_total",
		Help: "Total HTTP requests handled by the ERP application.",
	},
	[]string{"method", "path"},
)

var (
	registry     = prometheus.NewRegistry()
	registerOnce sync.Once
)

// Init registers the request counter and the stats collector. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		registry.MustRegister(RequestCount)
		registry.MustRegister(NewStatsCollector())
	})
}

// Handler exposes the registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}

// RequestCounter is a gin middleware incrementing RequestCount. The metrics
// and health endpoints themselves are not counted.
func RequestCounter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" || path == "/metrics" || path == "/health" {
			return
		}
		RequestCount.WithLabelValues(c.Request.Method, path).Inc()
	}
}

// StatsCollector samples the per-account aggregates on every scrape. Scrapes
// are read-only against the record store; a failing query drops that
// account's series for the scrape instead of failing the endpoint.
type StatsCollector struct {
	customersDesc *prometheus.Desc
	ordersDesc    *prometheus.Desc
	incomeDesc    *prometheus.Desc
	expenseDesc   *prometheus.Desc
	netDesc       *prometheus.Desc
	openTasksDesc *prometheus.Desc

	ordersTodayDesc  *prometheus.Desc
	incomeTodayDesc  *prometheus.Desc
	expenseTodayDesc *prometheus.Desc
}

// NewStatsCollector creates the aggregate collector.
func NewStatsCollector() *StatsCollector {
	labels := []string{"user_id"}
	return &StatsCollector{
		customersDesc: prometheus.NewDesc(
			"nativus_erp_customers_total", "Total customers per account.", labels, nil),
		ordersDesc: prometheus.NewDesc(
			"nativus_erp_orders_total", "Total orders per account.", labels, nil),
		incomeDesc: prometheus.NewDesc(
			"nativus_erp_income_total", "Total income amount per account.", labels, nil),
		expenseDesc: prometheus.NewDesc(
			"nativus_erp_expense_total", "Total expense amount per account.", labels, nil),
		netDesc: prometheus.NewDesc(
			"nativus_erp_net_total", "Income minus expense per account.", labels, nil),
		openTasksDesc: prometheus.NewDesc(
			"nativus_erp_open_tasks_total", "Tasks not yet done per account.", labels, nil),
		ordersTodayDesc: prometheus.NewDesc(
			"nativus_erp_orders_today", "Orders dated today per account.", labels, nil),
		incomeTodayDesc: prometheus.NewDesc(
			"nativus_erp_income_today", "Income recorded today per account.", labels, nil),
		expenseTodayDesc: prometheus.NewDesc(
			"nativus_erp_expense_today", "Expenses recorded today per account.", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (sc *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- sc.customersDesc
	ch <- sc.ordersDesc
	ch <- sc.incomeDesc
	ch <- sc.expenseDesc
	ch <- sc.netDesc
	ch <- sc.openTasksDesc
	ch <- sc.ordersTodayDesc
	ch <- sc.incomeTodayDesc
	ch <- sc.expenseTodayDesc
}

// Collect implements prometheus.Collector.
func (sc *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	db := database.DB
	if db == nil {
		return
	}

	var userIDs []uint
	if err := db.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		return
	}

	today := api.Today()
	for _, uid := range userIDs {
		label := strconv.FormatUint(uint64(uid), 10)

		stats, err := service.GetBasicStats(db, uid)
		if err == nil {
			ch <- prometheus.MustNewConstMetric(sc.customersDesc, prometheus.GaugeValue, float64(stats.TotalCustomers), label)
			ch <- prometheus.MustNewConstMetric(sc.ordersDesc, prometheus.GaugeValue, float64(stats.TotalOrders), label)
			ch <- prometheus.MustNewConstMetric(sc.incomeDesc, prometheus.GaugeValue, stats.TotalIncome, label)
			ch <- prometheus.MustNewConstMetric(sc.expenseDesc, prometheus.GaugeValue, stats.TotalExpense, label)
			ch <- prometheus.MustNewConstMetric(sc.netDesc, prometheus.GaugeValue, stats.Net, label)
			ch <- prometheus.MustNewConstMetric(sc.openTasksDesc, prometheus.GaugeValue, float64(stats.OpenTasks), label)
		}

		todayStats, err := service.GetTodayStats(db, uid, today)
		if err == nil {
			ch <- prometheus.MustNewConstMetric(sc.ordersTodayDesc, prometheus.GaugeValue, float64(todayStats.OrdersToday), label)
			ch <- prometheus.MustNewConstMetric(sc.incomeTodayDesc, prometheus.GaugeValue, todayStats.IncomeToday, label)
			ch <- prometheus.MustNewConstMetric(sc.expenseTodayDesc, prometheus.GaugeValue, todayStats.ExpenseToday, label)
		}
	}
}
