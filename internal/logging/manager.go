package logging

import (
	"fmt"
	"sort"
	"sync"

	"github.com/natefinch/lumberjack"
)

// LoggerManager управляет логгерами компонентов. Все они пишут
// в один файл логгера по умолчанию.
type LoggerManager struct {
	mu      sync.RWMutex
	opts    Options
	sink    *lumberjack.Logger
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = &LoggerManager{
			opts:    DefaultOptions(),
			loggers: make(map[string]*Logger),
		}
	})
	return globalManager
}

// Configure задаёт настройки для логгеров компонентов.
// Уже созданные логгеры пересоздаются при следующем GetLogger.
func (lm *LoggerManager) Configure(opts Options, sink *lumberjack.Logger) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.opts = opts
	lm.sink = sink
	lm.loggers = make(map[string]*Logger)
}

// GetLogger возвращает логгер для компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	if component == "" {
		return nil, fmt.Errorf("empty component name")
	}

	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger, nil
	}
	lm.mu.RUnlock()

	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз на случай race condition
	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger := newLogger(component, lm.opts, lm.sink)
	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или логгер по умолчанию при ошибке
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		return Default()
	}
	return logger
}

// CloseAll забывает логгеры компонентов. Общий файл закрывает CloseDefaultLogger.
func (lm *LoggerManager) CloseAll() {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.opts = DefaultOptions()
	lm.sink = nil
	lm.loggers = make(map[string]*Logger)
}

// ListComponents возвращает отсортированный список компонентов
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// SetLogLevel устанавливает уровень логирования для компонента
func (lm *LoggerManager) SetLogLevel(component string, consoleLevel, fileLevel LogLevel) error {
	lm.mu.RLock()
	logger, exists := lm.loggers[component]
	lm.mu.RUnlock()

	if !exists {
		return fmt.Errorf("logger for component %s not found", component)
	}

	logger.SetLevels(consoleLevel, fileLevel)
	return nil
}

// GetComponentLogger возвращает логгер компонента
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

func GetSceneLogger() *Logger {
	return GetComponentLogger("scene")
}

func GetStorageLogger() *Logger {
	return GetComponentLogger("storage")
}

func GetBuildLogger() *Logger {
	return GetComponentLogger("build")
}
