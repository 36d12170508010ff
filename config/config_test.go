package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/schedbench/config"
	"github.com/sarchlab/schedbench/linker"
	"github.com/sarchlab/schedbench/workload"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "config")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	writeConfig := func(content string) string {
		path := filepath.Join(dir, "schedbench.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("should provide valid defaults", func() {
		cfg := config.Default()

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Tiers).To(Equal([]workload.Tier{
			{Label: "S", BodyLines: 20, Replicas: 3},
			{Label: "M", BodyLines: 500, Replicas: 3},
			{Label: "L", BodyLines: 2000, Replicas: 3},
		}))
		Expect(cfg.Encoding).To(Equal(linker.DefaultEncoding))
		Expect(cfg.GridSize).To(Equal(30))
	})

	It("should keep the defaults when there is no file", func() {
		cfg, err := config.Load(filepath.Join(dir, "missing.yaml"))

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
	})

	It("should overlay the file on the defaults", func() {
		path := writeConfig(`
tiers:
  - label: XS
    body_lines: 4
    replicas: 1
seed: 7
method: cubic
encoding:
  bytes_per_line: 4
  overhead: 2
`)

		cfg, err := config.Load(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Tiers).To(Equal([]workload.Tier{{Label: "XS", BodyLines: 4, Replicas: 1}}))
		Expect(cfg.Seed).NotTo(BeNil())
		Expect(*cfg.Seed).To(Equal(int64(7)))
		Expect(cfg.Method).To(Equal("cubic"))
		Expect(cfg.Encoding).To(Equal(linker.Encoding{BytesPerLine: 4, Overhead: 2}))
		Expect(cfg.Tool).To(Equal("osx"))
	})

	DescribeTable("should reject invalid files",
		func(content string) {
			_, err := config.Load(writeConfig(content))

			Expect(err).To(HaveOccurred())
		},
		Entry("not yaml", "tiers: ["),
		Entry("no tiers", "tiers: []"),
		Entry("zero replicas", "tiers: [{label: S, body_lines: 1, replicas: 0}]"),
		Entry("negative lines", "tiers: [{label: S, body_lines: -1, replicas: 1}]"),
		Entry("duplicate label", "tiers: [{label: S, body_lines: 1, replicas: 1}, {label: S, body_lines: 2, replicas: 1}]"),
		Entry("unknown method", "method: nearest"),
		Entry("unknown recovery", "recovery: guess"),
		Entry("tiny grid", "grid_size: 1"),
	)

	It("should honour the environment override of the path", func() {
		os.Setenv(config.EnvPath, "/tmp/other.yaml")
		defer os.Unsetenv(config.EnvPath)

		Expect(config.Path()).To(Equal("/tmp/other.yaml"))
	})

	It("should build seeded generators", func() {
		cfg := config.Default()
		seed := int64(3)
		cfg.Seed = &seed
		tier := workload.Tier{Label: "S", BodyLines: 30, Replicas: 1}

		a := cfg.Generator().Generate(tier, workload.IO, 1)
		b := cfg.Generator().Generate(tier, workload.IO, 1)

		Expect(a.Instructions).To(Equal(b.Instructions))
	})

	It("should build the remaining components", func() {
		cfg := config.Default()

		Expect(cfg.Linker().Encoding()).To(Equal(linker.DefaultEncoding))
		Expect(cfg.Parser()).NotTo(BeNil())
		Expect(cfg.Visualizer()).NotTo(BeNil())
	})
})
