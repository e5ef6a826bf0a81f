package main

import (
	"flag"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mammothengine/mammoth_export/config"
	"github.com/mammothengine/mammoth_export/export"
	"github.com/mammothengine/mammoth_export/logger"
	"github.com/mammothengine/mammoth_export/scene"
	"github.com/mammothengine/mammoth_export/utils"
)

func main() {
	var scenePath, outPath, format, configPath, logLevel, logFile string
	var pretty, dump bool
	flag.StringVar(&scenePath, "scene", "", "Path to scene description file")
	flag.StringVar(&outPath, "o", "", "Output file (default: scene file with the format's extension)")
	flag.StringVar(&format, "format", "", "Output format: mammoth or gltf")
	flag.BoolVar(&pretty, "pretty", true, "Pretty-print the mammoth JSON output")
	flag.StringVar(&configPath, "config", "mammoth_export.yaml", "Path to config file")
	flag.StringVar(&logLevel, "loglevel", "", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "logfile", "", "Also log to this file")
	flag.BoolVar(&dump, "dump", false, "Dump the assembled document to stdout")
	flag.Parse()

	if scenePath == "" {
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Init("info", "")
		logger.Log.Fatal("Failed to load config", zap.Error(err))
	}
	prettySet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "pretty" {
			prettySet = true
		}
	})
	applyFlags(cfg, format, pretty, prettySet, logLevel, logFile)

	logger.Init(cfg.Logging.Level, cfg.Logging.File)
	defer logger.Sync()

	s, err := scene.LoadFile(scenePath)
	if err != nil {
		logger.Log.Fatal("Failed to load scene", zap.String("scene", scenePath), zap.Error(err))
	}

	if outPath == "" {
		outPath = defaultOutPath(scenePath, cfg.Output.Format)
	}

	logger.Log.Info("Exporting scene",
		zap.String("scene", scenePath),
		zap.String("out", outPath),
		zap.String("format", cfg.Output.Format),
		zap.Int("objects", len(s.Objects)),
		zap.Int("meshes", len(s.Meshes)),
		zap.Int("materials", len(s.Materials)),
		zap.Int("lights", len(s.Lights)),
		zap.Int("cameras", len(s.Cameras)))

	switch cfg.Output.Format {
	case config.FormatMammoth:
		doc, err := export.ExportScene(s)
		if err != nil {
			logger.Log.Fatal("Export failed", zap.Error(err))
		}
		if dump {
			utils.Dump(doc)
		}
		if err := doc.WriteFile(outPath, cfg.Output.PrettyPrint); err != nil {
			logger.Log.Fatal("Failed to write output", zap.Error(err))
		}
	case config.FormatGLTF:
		doc, err := export.ExportGLTF(s)
		if err != nil {
			logger.Log.Fatal("Export failed", zap.Error(err))
		}
		if dump {
			utils.Dump(doc)
		}
		if err := export.WriteGLTF(outPath, doc); err != nil {
			logger.Log.Fatal("Failed to write output", zap.Error(err))
		}
	}

	logger.Log.Info("Done", zap.String("out", outPath))
}

func applyFlags(cfg *config.Config, format string, pretty, prettySet bool, logLevel, logFile string) {
	if format != "" {
		cfg.Output.Format = format
	}
	if prettySet {
		cfg.Output.PrettyPrint = pretty
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		logger.Init("info", "")
		logger.Log.Fatal("Bad options", zap.Error(err))
	}
}

func defaultOutPath(scenePath, format string) string {
	ext := ".json"
	if format == config.FormatGLTF {
		ext = ".gltf"
	}
	base := strings.TrimSuffix(scenePath, filepath.Ext(scenePath))
	return base + ext
}
