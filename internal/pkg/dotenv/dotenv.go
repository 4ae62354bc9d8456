package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load разбирает флаги командной строки и читает указанный ими env-файл.
// Отсутствие файла не ошибка, тогда используется окружение процесса.
// Уже заданные переменные окружения важнее значений из файла.
func Load(args []string) (loaded bool, err error) {
	fset := flag.NewFlagSet("orderboard", flag.ContinueOnError)
	envFile := fset.String("env", ".env", "Path to the env file")
	portFlag := fset.String("port", "", "Server port (overrides PORT environment variable)")
	if err := fset.Parse(args); err != nil {
		return false, fmt.Errorf("parse flags: %w", err)
	}

	err = godotenv.Load(*envFile)
	switch {
	case err == nil:
		loaded = true
	case errors.Is(err, fs.ErrNotExist):
	default:
		return false, fmt.Errorf("load %s: %w", *envFile, err)
	}

	if *portFlag != "" {
		if err := os.Setenv("PORT", *portFlag); err != nil {
			return loaded, fmt.Errorf("failed to set PORT environment variable: %w", err)
		}
	}
	return loaded, nil
}
