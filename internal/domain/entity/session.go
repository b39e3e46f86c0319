package entity

// ZoomMode способ подбора масштаба
type ZoomMode string

const (
	ZoomFitWindow ZoomMode = "fit_window"
	ZoomFitWidth  ZoomMode = "fit_width"
	ZoomManual    ZoomMode = "manual"
)

// NeutralAdjustment значение ползунка яркости/контраста без изменений
const NeutralAdjustment = 50

// Session состояние просмотра одного файла, хранится вне холста
type Session struct {
	Path       string   // путь к изображению (ключ)
	ZoomMode   ZoomMode // режим масштаба
	Zoom       int      // масштаб в процентах
	ScrollH    int      // горизонтальная прокрутка
	ScrollV    int      // вертикальная прокрутка
	Brightness int      // яркость 0..150, 50 нейтрально
	Contrast   int      // контраст 0..150, 50 нейтрально
}

// NewSession создаёт сессию с настройками по умолчанию
func NewSession(path string) *Session {
	return &Session{
		Path:       path,
		ZoomMode:   ZoomFitWindow,
		Zoom:       100,
		Brightness: NeutralAdjustment,
		Contrast:   NeutralAdjustment,
	}
}

// Adjusted true, если яркость или контраст отличаются от нейтральных
func (s *Session) Adjusted() bool {
	return s.Brightness != NeutralAdjustment || s.Contrast != NeutralAdjustment
}

// Scale масштаб отображения как множитель
func (s *Session) Scale() float64 {
	return float64(s.Zoom) / 100
}
