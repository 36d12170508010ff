package record_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/schedbench/metrics"
	"github.com/sarchlab/schedbench/record"
)

var _ = Describe("Open", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "record")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should write flushed rows to a sqlite file", func() {
		rec, path, err := record.Open(filepath.Join(dir, "results"), "metrics")
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(path)).To(HavePrefix("metrics_"))
		Expect(strings.HasSuffix(path, ".sqlite3")).To(BeTrue())

		metrics.RecordTable(rec, metrics.Table{Records: []metrics.Record{{
			Quantum1:       4,
			Quantum2:       8,
			Throughput:     7,
			WaitingTime:    1.5,
			TurnaroundTime: 3,
			ResponseTime:   0.5,
		}}})
		rec.Flush()

		Expect(path).To(BeAnExistingFile())

		db, err := sql.Open("sqlite3", path)
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		var throughput float64
		err = db.QueryRow(
			"SELECT Throughput FROM metrics WHERE Quantum1 = 4").
			Scan(&throughput)
		Expect(err).NotTo(HaveOccurred())
		Expect(throughput).To(Equal(7.0))
	})

	It("should give every run its own file", func() {
		_, a, err := record.Open(dir, "workload")
		Expect(err).NotTo(HaveOccurred())
		_, b, err := record.Open(dir, "workload")
		Expect(err).NotTo(HaveOccurred())

		Expect(a).NotTo(Equal(b))
	})

	It("should fail when the directory cannot be created", func() {
		blocker := filepath.Join(dir, "blocker")
		Expect(os.WriteFile(blocker, nil, 0o644)).To(Succeed())

		_, _, err := record.Open(filepath.Join(blocker, "sub"), "metrics")

		Expect(err).To(HaveOccurred())
	})
})
