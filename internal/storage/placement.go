package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annel0/tileworld/internal/world/settlement"
)

// placementFilename имя файла истории размещений поселений
const placementFilename = "settlements.json"

// SavePlacementIndex сохраняет историю размещений поселений рядом
// с данными мира, чтобы ограничения на дистанцию переживали перезапуск.
func SavePlacementIndex(dataPath string, index settlement.PlacementIndex) error {
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dataPath, err)
	}

	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("ошибка сериализации истории размещений: %w", err)
	}

	filename := filepath.Join(dataPath, placementFilename)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", filename, err)
	}
	return nil
}

// LoadPlacementIndex загружает историю размещений поселений.
// Отсутствие файла — не ошибка, возвращается пустая история.
func LoadPlacementIndex(dataPath string) (settlement.PlacementIndex, error) {
	filename := filepath.Join(dataPath, placementFilename)
	raw, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return make(settlement.PlacementIndex), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var index settlement.PlacementIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("ошибка десериализации истории размещений: %w", err)
	}
	return index, nil
}
