// Package metrics exposes the reconciler tracking-table sizes as
// Prometheus gauges, served over HTTP for scraping.
package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/racoon-project/racoon/pkg/logging"
	"github.com/racoon-project/racoon/pkg/orchd"
	"github.com/racoon-project/racoon/pkg/syncd"
)

var (
	vlanCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "racoon",
		Name:      "vlans_tracked",
		Help:      "Number of VLANs currently tracked by the reconciler.",
	}, []string{"component"})

	vlanMemberCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "racoon",
		Name:      "vlan_members_tracked",
		Help:      "Number of VLAN members currently tracked by the reconciler.",
	}, []string{"component"})

	lagCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "racoon",
		Name:      "lags_tracked",
		Help:      "Number of LAGs currently tracked by the reconciler.",
	}, []string{"component"})

	lagMemberCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "racoon",
		Name:      "lag_members_tracked",
		Help:      "Number of LAG members currently tracked by the reconciler.",
	}, []string{"component"})

	fdbCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "racoon",
		Name:      "fdb_entries_tracked",
		Help:      "Number of FDB entries currently tracked by the reconciler.",
	}, []string{"component"})

	portCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "racoon",
		Name:      "ports_tracked",
		Help:      "Number of ports resolved to hardware OIDs by syncd.",
	}, []string{"component"})
)

func init() {
	prometheus.MustRegister(vlanCount, vlanMemberCount, lagCount, lagMemberCount, fdbCount, portCount)
}

// ReportOrchd publishes an orchd Stats snapshot under the "orchd" label.
func ReportOrchd(s orchd.Stats) {
	vlanCount.WithLabelValues("orchd").Set(float64(s.VlanCount))
	vlanMemberCount.WithLabelValues("orchd").Set(float64(s.VlanMemberCount))
	lagCount.WithLabelValues("orchd").Set(float64(s.LagCount))
	lagMemberCount.WithLabelValues("orchd").Set(float64(s.LagMemberCount))
	fdbCount.WithLabelValues("orchd").Set(float64(s.FdbCount))
}

// ReportSyncd publishes a syncd Stats snapshot under the "syncd" label.
func ReportSyncd(s syncd.Stats) {
	portCount.WithLabelValues("syncd").Set(float64(s.PortCount))
	vlanCount.WithLabelValues("syncd").Set(float64(s.VlanCount))
	vlanMemberCount.WithLabelValues("syncd").Set(float64(s.VlanMemberCount))
	lagCount.WithLabelValues("syncd").Set(float64(s.LagCount))
	lagMemberCount.WithLabelValues("syncd").Set(float64(s.LagMemberCount))
	fdbCount.WithLabelValues("syncd").Set(float64(s.FdbCount))
}

// Poller periodically calls a Stats getter and republishes it until the
// context is cancelled.
type Poller struct {
	Interval time.Duration
	Report   func()
}

// Run blocks, calling Report every Interval, until ctx is done.
func (p Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Report()
		}
	}
}

// Serve starts the /metrics HTTP endpoint on addr and blocks until ctx is
// cancelled, then shuts the server down.
func Serve(ctx context.Context, addr string) error {
	log := logging.WithComponent("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("metrics endpoint listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
