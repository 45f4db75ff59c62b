package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/khushiprajapath451-lab/Medwiseai/internal/config"
	"github.com/khushiprajapath451-lab/Medwiseai/internal/gateway/repository/report"
)

func initReportStore(cfg *config.Config, logger *zap.Logger) (report.Store, error) {
	if !cfg.Report.Enabled {
		logger.Info("report store: memory")
		return report.NewMemoryStore(), nil
	}
	s3Cfg := report.S3Config{
		Endpoint:  cfg.Report.Endpoint,
		Region:    cfg.Report.Region,
		AccessKey: cfg.Report.AccessKey,
		SecretKey: cfg.Report.SecretKey,
		Bucket:    cfg.Report.Bucket,
		UseSSL:    cfg.Report.UseSSL,
	}
	store, err := report.NewS3Store(s3Cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report s3 store: %w", err)
	}
	logger.Info("report store: s3", zap.String("bucket", s3Cfg.Bucket), zap.String("endpoint", s3Cfg.Endpoint))
	return store, nil
}
