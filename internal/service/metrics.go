package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts upload outcomes. A nil *Metrics records nothing.
type Metrics struct {
	uploads   *prometheus.CounterVec
	documents *prometheus.CounterVec
	bytes     prometheus.Counter
}

// NewMetrics registers the upload counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grantdocs_uploads_total",
				Help: "Upload submissions by outcome.",
			},
			[]string{"status"},
		),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grantdocs_documents_stored_total",
				Help: "Documents stored by category.",
			},
			[]string{"category"},
		),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grantdocs_document_bytes_total",
			Help: "Bytes of document content stored.",
		}),
	}
	for _, c := range []prometheus.Collector{m.uploads, m.documents, m.bytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) upload(status string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(status).Inc()
}

func (m *Metrics) document(category string, size int64) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(category).Inc()
	if size > 0 {
		m.bytes.Add(float64(size))
	}
}
