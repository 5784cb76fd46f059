// 导入故事种子数据
//
// 首次部署或清库后执行，已存在的故事不会被覆盖。
//
// 用法: go run scripts/seed_narratives.go -file configs/narratives.yaml

package main

import (
	"context"
	"feelio_backend/internal/config"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/service"
	"feelio_backend/pkg/database"
	"feelio_backend/pkg/logger"
	"flag"
	"log"
	"os"
	"time"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	file := flag.String("file", "configs/narratives.yaml", "故事种子文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取种子文件: %v", err)
	}
	seeds, err := service.ParseNarrativeSeeds(data)
	if err != nil {
		log.Fatalf("解析种子文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis 不可用，跳过缓存清理: %v", err)
		rdb = nil
	}

	repo := repository.NewNarrativeRepository(db, rdb, time.Duration(cfg.Redis.NarrativeTTL)*time.Second)
	narratives := service.NewNarrativeService(repo, service.NewStorageService(cfg))

	created, err := narratives.Seed(context.Background(), seeds)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	log.Printf("完成！新增 %d 个故事，共 %d 个", created, len(seeds))
}
