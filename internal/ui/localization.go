package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyOpen             = "open"
	KeyPlay             = "play"
	KeyPause            = "pause"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyView             = "view"
	KeyLanguage         = "language"
	KeyControlBar       = "control_bar"
	KeySubtitleExample  = "subtitle.example"
	KeyFontSize         = "font_size"
	KeyFontSizeDefault  = "font_size_default"
	KeyForceIntoView    = "force_into_view"
	KeyTimelineDir      = "timeline_directory"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeySettingsSaved    = "settings_saved"
	KeyTimelineLoaded   = "timeline_loaded"
	KeyErrorLoading     = "error_loading_timeline"
	KeyPlaybackFinished = "playback_finished"
	KeyNoTimeline       = "no_timeline"
	KeyShowInFolder     = "show_in_folder"
	KeyErrorShowFolder  = "error_show_in_folder"
)

var supportedLanguages = []language.Tag{
	language.English, // first is the fallback
	language.Russian,
	language.Portuguese,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

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
	if lang == "system" {
		lang = SystemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// SystemLanguage matches the locale environment against the available
// translations and returns the base language code
func SystemLanguage() string {
	return MatchLanguage(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
}

// MatchLanguage returns the best available language for the given locale
// strings, such as "ru_RU.UTF-8" or "pt-BR"
func MatchLanguage(locales ...string) string {
	var cleaned []string
	for _, locale := range locales {
		// POSIX locales: strip encoding and modifier, use BCP 47 separators
		if i := strings.IndexAny(locale, ".@"); i >= 0 {
			locale = locale[:i]
		}
		locale = strings.ReplaceAll(locale, "_", "-")
		if locale == "" || locale == "C" || locale == "POSIX" {
			continue
		}
		cleaned = append(cleaned, locale)
	}

	_, index := language.MatchStrings(languageMatcher, cleaned...)
	base, _ := supportedLanguages[index].Base()
	return base.String()
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

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
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
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Subtitle Overlay",
		KeyOpen:             "Open Timeline",
		KeyPlay:             "Play",
		KeyPause:            "Pause",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyView:             "View",
		KeyLanguage:         "Language",
		KeyControlBar:       "Control Bar",
		KeySubtitleExample:  "Example subtitle",
		KeyFontSize:         "Font Size",
		KeyFontSizeDefault:  "Default",
		KeyForceIntoView:    "Keep subtitles inside the video",
		KeyTimelineDir:      "Timeline Directory",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyTimelineLoaded:   "Timeline loaded",
		KeyErrorLoading:     "Error loading timeline",
		KeyPlaybackFinished: "Playback finished",
		KeyNoTimeline:       "Open a timeline to start",
		KeyShowInFolder:     "Show in Folder",
		KeyErrorShowFolder:  "Could not open the folder",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Субтитры",
		KeyOpen:             "Открыть таймлайн",
		KeyPlay:             "Воспроизвести",
		KeyPause:            "Пауза",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyView:             "Вид",
		KeyLanguage:         "Язык",
		KeyControlBar:       "Панель управления",
		KeySubtitleExample:  "Пример субтитров",
		KeyFontSize:         "Размер шрифта",
		KeyFontSizeDefault:  "По умолчанию",
		KeyForceIntoView:    "Держать субтитры внутри видео",
		KeyTimelineDir:      "Папка таймлайнов",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyTimelineLoaded:   "Таймлайн загружен",
		KeyErrorLoading:     "Ошибка загрузки таймлайна",
		KeyPlaybackFinished: "Воспроизведение завершено",
		KeyNoTimeline:       "Откройте таймлайн для начала",
		KeyShowInFolder:     "Показать в папке",
		KeyErrorShowFolder:  "Не удалось открыть папку",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Legendas",
		KeyOpen:             "Abrir Linha do Tempo",
		KeyPlay:             "Reproduzir",
		KeyPause:            "Pausar",
		KeySettings:         "Configurações",
		KeyFile:             "Arquivo",
		KeyView:             "Exibir",
		KeyLanguage:         "Idioma",
		KeyControlBar:       "Barra de Controle",
		KeySubtitleExample:  "Exemplo de legenda",
		KeyFontSize:         "Tamanho da Fonte",
		KeyFontSizeDefault:  "Padrão",
		KeyForceIntoView:    "Manter legendas dentro do vídeo",
		KeyTimelineDir:      "Diretório de Linhas do Tempo",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeySettingsSaved:    "Configurações salvas com sucesso!",
		KeyTimelineLoaded:   "Linha do tempo carregada",
		KeyErrorLoading:     "Erro ao carregar linha do tempo",
		KeyPlaybackFinished: "Reprodução concluída",
		KeyNoTimeline:       "Abra uma linha do tempo para começar",
		KeyShowInFolder:     "Mostrar na Pasta",
		KeyErrorShowFolder:  "Não foi possível abrir a pasta",
	}
}
