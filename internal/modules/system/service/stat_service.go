package service

import (
	"context"
	"runtime"

	moduledto "github.com/adromero/frame-sync/internal/modules/system/dto"
	platformservice "github.com/adromero/frame-sync/internal/platform/service"
)

// GetServerStats 汇总各表数量与原图总大小
func (s *Service) GetServerStats(ctx context.Context) (*moduledto.ServerStatsResponse, error) {
	stats := &moduledto.ServerStatsResponse{
		SystemInfo: moduledto.SystemInfoResponse{
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
		},
	}

	counts := []struct {
		counter Counter
		dst     *int64
	}{
		{s.sources.Users, &stats.Users},
		{s.sources.Devices, &stats.Devices},
		{s.sources.Images, &stats.Images},
		{s.sources.Assignments, &stats.Assignments},
		{s.sources.Thumbnails, &stats.Thumbnails},
	}
	for _, item := range counts {
		n, err := item.counter.CountAll(ctx)
		if err != nil {
			return nil, platformservice.TranslateStorageError(err, "统计数据失败")
		}
		*item.dst = n
	}

	totalSize, err := s.sources.Images.SumAllSize(ctx)
	if err != nil {
		return nil, platformservice.TranslateStorageError(err, "统计图片数据失败")
	}
	stats.TotalBytes = totalSize
	return stats, nil
}
