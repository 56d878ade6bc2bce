package main

import (
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/roadplan/xodrgen/pkg/concurrent"
	"github.com/roadplan/xodrgen/pkg/export"
	"github.com/roadplan/xodrgen/pkg/logger"
	"github.com/roadplan/xodrgen/pkg/util"
)

type generateJob struct {
	name  string
	build networkBuilder
}

type generateResult struct {
	name string
	err  error
}

func main() {
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	viper.SetDefault("generator.output_dir", "./out")
	viper.SetDefault("generator.workers", 4)
	viper.SetDefault("generator.sample_step", export.DefaultSampleStep)
	viper.SetDefault("generator.geojson", true)
	if err := util.ReadConfig(); err != nil {
		log.Warn("no config file found, using defaults", zap.Error(err))
	}

	outputDir := viper.GetString("generator.output_dir")
	workers := viper.GetInt("generator.workers")
	sampleStep := viper.GetFloat64("generator.sample_step")
	writeGeoJSON := viper.GetBool("generator.geojson")

	names, err := exampleNames(viper.GetStringSlice("generator.examples"))
	if err != nil {
		log.Fatal("invalid example selection", zap.Error(err))
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatal("creating output directory", zap.Error(err))
	}

	pool := concurrent.NewWorkerPool[generateJob, generateResult](workers, len(names))
	pool.Start(func(job generateJob) generateResult {
		return generateResult{
			name: job.name,
			err:  generate(job, outputDir, sampleStep, writeGeoJSON, log),
		}
	})
	for _, name := range names {
		pool.AddJob(generateJob{name: name, build: exampleNetworks[name]})
	}
	pool.Close()
	go pool.Wait()

	failed := 0
	for res := range pool.CollectResults() {
		if res.err != nil {
			failed++
			log.Error("generation failed", zap.String("network", res.name), zap.Error(res.err))
		} else {
			log.Info("network written", zap.String("network", res.name))
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func generate(job generateJob, outputDir string, sampleStep float64, writeGeoJSON bool, log *zap.Logger) error {
	odr, err := job.build(log)
	if err != nil {
		return err
	}

	if err := odr.WriteXML(filepath.Join(outputDir, job.name+".xodr")); err != nil {
		return err
	}
	if !writeGeoJSON {
		return nil
	}

	fc, err := export.FeatureCollection(odr, sampleStep)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return pkgerrors.Wrapf(err, "encoding geojson for %s", job.name)
	}
	path := filepath.Join(outputDir, job.name+".geojson")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "writing %s", path)
	}
	return nil
}
