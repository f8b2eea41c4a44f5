package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/ytget/video-sorter/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle = "app_title"

	// Buttons
	KeyPlayPause    = "play_pause"
	KeyReplay       = "replay"
	KeySkipBack     = "skip_back"
	KeySkipForward  = "skip_forward"
	KeySkipLong     = "skip_long"
	KeyPrevious     = "previous"
	KeyNext         = "next"
	KeyRepeat       = "repeat"
	KeyAuto         = "auto"
	KeyRandom       = "random"
	KeyOn           = "on"
	KeyOff          = "off"
	KeyDelete       = "delete"
	KeyFullscreen   = "fullscreen"
	KeySelectFolder = "select_folder"
	KeyShowInFolder = "show_in_folder"
	KeySettings     = "settings"
	KeyExit         = "exit"
	KeyMute         = "mute"
	KeyUnmute       = "unmute"

	// Menus and dialogs
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeyRecentFolders    = "recent_folders"
	KeyUseSelected      = "use_selected"
	KeyBrowseNew        = "browse_new"
	KeyChooseVideoDir   = "choose_video_dir"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyMPVBinary        = "mpv_binary"
	KeySkipShortSeconds = "skip_short_seconds"
	KeySkipLongSeconds  = "skip_long_seconds"
	KeySettingsSaved    = "settings_saved"
	KeyRestartRequired  = "restart_required"
	KeyNoVideo          = "no_video"

	// Status bar
	KeyStatusNoFolder = "status_no_folder"
	KeyStatusNoVideos = "status_no_videos"
	KeyStatusFound    = "status_found"
	KeyStatusPlaying  = "status_playing"
	KeyStatusDeleted  = "status_deleted"
	KeyStatusNoneLeft = "status_none_left"
	KeyStatusError    = "status_error"

	KeyErrorOpeningFile = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" || lang == "" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage derives a two-letter code from the POSIX locale variables
func systemLanguage() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); len(v) >= 2 {
			return strings.ToLower(v[:2])
		}
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// Format returns the localized format string for key applied to args
func (l *Localization) Format(key string, args ...interface{}) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// Toggle renders a mode button label such as "Repeat: On"
func (l *Localization) Toggle(key string, on bool) string {
	state := l.GetText(KeyOff)
	if on {
		state = l.GetText(KeyOn)
	}
	return l.GetText(key) + ": " + state
}

// StatusText renders a status-bar message
func (l *Localization) StatusText(st model.Status) string {
	switch st.Kind {
	case model.StatusNoFolder:
		return l.GetText(KeyStatusNoFolder)
	case model.StatusNoVideos:
		return l.GetText(KeyStatusNoVideos)
	case model.StatusFound:
		return l.Format(KeyStatusFound, st.Count)
	case model.StatusPlaying:
		return l.Format(KeyStatusPlaying, st.Index, st.Total)
	case model.StatusDeleted:
		return l.Format(KeyStatusDeleted, st.Name) + MiddleDotSeparator + l.Format(KeyStatusPlaying, st.Index, st.Total)
	case model.StatusNoneLeft:
		return l.Format(KeyStatusDeleted, st.Name) + MiddleDotSeparator + l.GetText(KeyStatusNoneLeft)
	case model.StatusError:
		return l.Format(KeyStatusError, st.Err)
	default:
		return DashPlaceholder
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetLanguageCodes returns the supported language codes in menu order
func (l *Localization) GetLanguageCodes() []string {
	return []string{"en", "ru", "pt"}
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Video File Sorter",
		KeyPlayPause:        "Play/Pause",
		KeyReplay:           "Replay",
		KeySkipBack:         "<< %ds",
		KeySkipForward:      "%ds >>",
		KeySkipLong:         "%ds >>",
		KeyPrevious:         "Previous",
		KeyNext:             "Next",
		KeyRepeat:           "Repeat",
		KeyAuto:             "Auto",
		KeyRandom:           "Random",
		KeyOn:               "On",
		KeyOff:              "Off",
		KeyDelete:           "Delete",
		KeyFullscreen:       "Fullscreen",
		KeySelectFolder:     "Select Folder",
		KeyShowInFolder:     "Show in Folder",
		KeySettings:         "Settings",
		KeyExit:             "Exit",
		KeyMute:             "Mute",
		KeyUnmute:           "Unmute",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyRecentFolders:    "Recent folders:",
		KeyUseSelected:      "Use Selected",
		KeyBrowseNew:        "Browse New Folder",
		KeyChooseVideoDir:   "Select Folder Containing Videos",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyMPVBinary:        "mpv executable",
		KeySkipShortSeconds: "Short skip (seconds)",
		KeySkipLongSeconds:  "Long skip (seconds)",
		KeySettingsSaved:    "Settings saved",
		KeyRestartRequired:  "The new player executable is used after a restart",
		KeyNoVideo:          "No video loaded",
		KeyStatusNoFolder:   "No folder selected",
		KeyStatusNoVideos:   "No video files found in folder",
		KeyStatusFound:      "Found %d videos",
		KeyStatusPlaying:    "Playing %d/%d",
		KeyStatusDeleted:    "Deleted: %s",
		KeyStatusNoneLeft:   "No more videos",
		KeyStatusError:      "Error: %s",
		KeyErrorOpeningFile: "Error opening file",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Сортировщик видео",
		KeyPlayPause:        "Пуск/Пауза",
		KeyReplay:           "Заново",
		KeySkipBack:         "<< %dс",
		KeySkipForward:      "%dс >>",
		KeySkipLong:         "%dс >>",
		KeyPrevious:         "Назад",
		KeyNext:             "Вперёд",
		KeyRepeat:           "Повтор",
		KeyAuto:             "Авто",
		KeyRandom:           "Случайно",
		KeyOn:               "Вкл",
		KeyOff:              "Выкл",
		KeyDelete:           "Удалить",
		KeyFullscreen:       "Полный экран",
		KeySelectFolder:     "Выбрать папку",
		KeyShowInFolder:     "Показать в папке",
		KeySettings:         "Настройки",
		KeyExit:             "Выход",
		KeyMute:             "Без звука",
		KeyUnmute:           "Со звуком",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeyRecentFolders:    "Недавние папки:",
		KeyUseSelected:      "Открыть выбранную",
		KeyBrowseNew:        "Обзор...",
		KeyChooseVideoDir:   "Выберите папку с видео",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyMPVBinary:        "Исполняемый файл mpv",
		KeySkipShortSeconds: "Короткий переход (секунды)",
		KeySkipLongSeconds:  "Длинный переход (секунды)",
		KeySettingsSaved:    "Настройки сохранены",
		KeyRestartRequired:  "Новый проигрыватель будет использован после перезапуска",
		KeyNoVideo:          "Видео не загружено",
		KeyStatusNoFolder:   "Папка не выбрана",
		KeyStatusNoVideos:   "В папке нет видеофайлов",
		KeyStatusFound:      "Найдено видео: %d",
		KeyStatusPlaying:    "Воспроизведение %d/%d",
		KeyStatusDeleted:    "Удалено: %s",
		KeyStatusNoneLeft:   "Видео больше нет",
		KeyStatusError:      "Ошибка: %s",
		KeyErrorOpeningFile: "Ошибка открытия файла",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Organizador de Vídeos",
		KeyPlayPause:        "Reproduzir/Pausar",
		KeyReplay:           "Repetir agora",
		KeySkipBack:         "<< %ds",
		KeySkipForward:      "%ds >>",
		KeySkipLong:         "%ds >>",
		KeyPrevious:         "Anterior",
		KeyNext:             "Próximo",
		KeyRepeat:           "Repetir",
		KeyAuto:             "Auto",
		KeyRandom:           "Aleatório",
		KeyOn:               "Sim",
		KeyOff:              "Não",
		KeyDelete:           "Excluir",
		KeyFullscreen:       "Tela cheia",
		KeySelectFolder:     "Selecionar pasta",
		KeyShowInFolder:     "Mostrar na pasta",
		KeySettings:         "Configurações",
		KeyExit:             "Sair",
		KeyMute:             "Silenciar",
		KeyUnmute:           "Ativar som",
		KeyFile:             "Arquivo",
		KeyLanguage:         "Idioma",
		KeyRecentFolders:    "Pastas recentes:",
		KeyUseSelected:      "Usar selecionada",
		KeyBrowseNew:        "Procurar nova pasta",
		KeyChooseVideoDir:   "Selecione a pasta com vídeos",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeyMPVBinary:        "Executável do mpv",
		KeySkipShortSeconds: "Salto curto (segundos)",
		KeySkipLongSeconds:  "Salto longo (segundos)",
		KeySettingsSaved:    "Configurações salvas",
		KeyRestartRequired:  "O novo executável será usado após reiniciar",
		KeyNoVideo:          "Nenhum vídeo carregado",
		KeyStatusNoFolder:   "Nenhuma pasta selecionada",
		KeyStatusNoVideos:   "Nenhum vídeo encontrado na pasta",
		KeyStatusFound:      "%d vídeos encontrados",
		KeyStatusPlaying:    "Reproduzindo %d/%d",
		KeyStatusDeleted:    "Excluído: %s",
		KeyStatusNoneLeft:   "Não há mais vídeos",
		KeyStatusError:      "Erro: %s",
		KeyErrorOpeningFile: "Erro ao abrir arquivo",
	}
}
