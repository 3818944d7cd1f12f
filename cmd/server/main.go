package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/tileworld/internal/config"
	"github.com/annel0/tileworld/internal/logging"
	"github.com/annel0/tileworld/internal/storage"
	"github.com/annel0/tileworld/internal/world"
)

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🌍 Запуск сервера генерации мира...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load("")
	if err != nil {
		logging.Error("Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{} // Дефолты
	}

	seed := cfg.World.GetSeed()
	dataPath := cfg.Storage.GetDataPath()
	logging.Info("📡 Конфигурация: seed=%d, data=%s, storage=%s", seed, dataPath, cfg.Storage.GetBackend())

	// === ХРАНИЛИЩЕ ЧАНКОВ ===
	var store world.ChunkStore
	switch cfg.Storage.GetBackend() {
	case "badger":
		badgerStore, err := storage.NewBadgerStore(dataPath)
		if err != nil {
			logging.Error("❌ Ошибка открытия BadgerDB: %v", err)
			log.Fatalf("❌ Ошибка открытия BadgerDB: %v", err)
		}
		store = badgerStore
	default:
		store = storage.NewFileStore(dataPath, cfg.Storage.UseGzipCompr)
	}
	defer store.Close()

	// === ГЕНЕРАТОР И МЕНЕДЖЕР ЧАНКОВ ===
	generator := world.NewWorldGenerator(seed)

	// Восстанавливаем историю размещений поселений, чтобы ограничения
	// на дистанцию между поселениями переживали перезапуск
	if index, err := storage.LoadPlacementIndex(dataPath); err != nil {
		logging.Warn("История размещений не восстановлена: %v", err)
	} else {
		generator.Settlements().Restore(index)
	}

	chunkManager := world.NewChunkManager(generator, store)
	chunkManager.SetStreamingRadii(cfg.World.GetLoadRadius(), cfg.World.GetUnloadRadius())

	// === МЕТРИКИ ===
	metricsAddr := fmt.Sprintf(":%d", cfg.Metrics.GetMetricsPort())
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(metricsAddr, nil); err != nil {
			logging.Error("Сервер метрик: %v", err)
		}
	}()
	logging.Info("📈 Prometheus метрики: http://localhost%s/metrics", metricsAddr)

	// === ДЕМОНСТРАЦИОННЫЙ ОБХОД МИРА ===
	// Игрок идёт на восток от точки спауна; стриминг подгружает чанки
	// впереди и выгружает (с сохранением) чанки позади.
	playerX, playerY := 0, 0
	if err := chunkManager.UpdateStreaming(playerX, playerY); err != nil {
		logging.Error("❌ Ошибка стриминга: %v", err)
		log.Fatalf("❌ Ошибка стриминга: %v", err)
	}

	for step := 0; step < 8; step++ {
		playerX += world.ChunkSize / 2
		if err := chunkManager.UpdateStreaming(playerX, playerY); err != nil {
			logging.Error("❌ Ошибка стриминга: %v", err)
			log.Fatalf("❌ Ошибка стриминга: %v", err)
		}

		t, _ := chunkManager.GetTile(playerX, playerY)
		biome, _ := chunkManager.GetBiome(playerX, playerY)
		entities, _ := chunkManager.GetEntitiesInArea(playerX, playerY, world.ChunkSize)
		logging.Info("Игрок (%d,%d): тайл=%s биом=%s, сущностей рядом: %d, чанков в кеше: %d",
			playerX, playerY, t.Name(), biome, len(entities), chunkManager.LoadedCount())
	}

	logging.Info("✅ Мир готов, ожидание сигнала завершения (Ctrl+C)")

	// === КОРРЕКТНОЕ ЗАВЕРШЕНИЕ ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logging.Info("💾 Сохранение мира перед выходом...")
	if err := chunkManager.SaveAll(); err != nil {
		logging.Error("Ошибка сохранения чанков: %v", err)
	}
	if err := storage.SavePlacementIndex(dataPath, generator.Settlements().Snapshot()); err != nil {
		logging.Error("Ошибка сохранения истории размещений: %v", err)
	}
	logging.Info("✅ Сервер остановлен")
}
