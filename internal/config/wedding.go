package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// dateLayout is the ISO local date-time format the wedding file uses,
// e.g. "2026-10-17T13:30:00". No zone suffix: the ceremony time is local.
const dateLayout = "2006-01-02T15:04:05"

// Wedding is the static invitation content. It is loaded once at startup,
// validated, and passed down read-only; nothing mutates it afterwards.
type Wedding struct {
	Groom    Person   `yaml:"groom"`
	Bride    Person   `yaml:"bride"`
	Date     string   `yaml:"date" env:"WEDDING_DATE"`
	Venue    Venue    `yaml:"venue"`
	Greeting string   `yaml:"greeting"`
	Gallery  []string `yaml:"gallery"`

	MainPhoto  string `yaml:"main_photo"`
	IntroPhoto string `yaml:"intro_photo"`

	Kakao    Kakao    `yaml:"kakao"`
	Meta     Meta     `yaml:"meta"`
	Features Features `yaml:"features"`

	date time.Time
}

type Person struct {
	Name        string  `yaml:"name"`
	EnglishName string  `yaml:"english_name"`
	Phone       string  `yaml:"phone"`
	Father      Parent  `yaml:"father"`
	Mother      Parent  `yaml:"mother"`
	FamilyOrder string  `yaml:"family_order"`
	Account     Account `yaml:"account"`

	FatherAccount Account `yaml:"father_account"`
	MotherAccount Account `yaml:"mother_account"`
}

type Parent struct {
	Name  string `yaml:"name"`
	Alive bool   `yaml:"alive"`
}

type Account struct {
	Bank   string `yaml:"bank"`
	Number string `yaml:"number"`
	Holder string `yaml:"holder"`
}

type Venue struct {
	Name    string  `yaml:"name"`
	Hall    string  `yaml:"hall"`
	Address string  `yaml:"address"`
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Tel     string  `yaml:"tel"`
	Subway  string  `yaml:"subway"`
	Bus     string  `yaml:"bus"`
	Parking string  `yaml:"parking"`
}

type Kakao struct {
	JSKey      string `yaml:"js_key" env:"KAKAO_JS_KEY"`
	ShareImage string `yaml:"share_image"`
}

type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	SiteURL     string `yaml:"site_url"`
}

// Features toggles whether a section or capability is served at all.
type Features struct {
	BGM          bool `yaml:"bgm"`
	RSVP         bool `yaml:"rsvp"`
	Guestbook    bool `yaml:"guestbook"`
	KakaoShare   bool `yaml:"kakao_share"`
	KakaoPay     bool `yaml:"kakao_pay"`
	CopyAccount  bool `yaml:"copy_account"`
	NavKakao     bool `yaml:"nav_kakao"`
	NavNaver     bool `yaml:"nav_naver"`
	NavTmap      bool `yaml:"nav_tmap"`
	FlowerEffect bool `yaml:"flower_effect"`
	Countdown    bool `yaml:"countdown"`
}

// defaultFeatures are applied before the file is read so that toggles
// omitted from the file stay on, while an explicit false is honored.
func defaultFeatures() Features {
	return Features{
		BGM:          true,
		RSVP:         true,
		Guestbook:    true,
		KakaoShare:   true,
		KakaoPay:     false,
		CopyAccount:  true,
		NavKakao:     true,
		NavNaver:     true,
		NavTmap:      true,
		FlowerEffect: true,
		Countdown:    true,
	}
}

// LoadWedding reads the wedding content file and validates it. A bad date
// is a deployment defect, so it fails here rather than at request time.
func LoadWedding(path string) (*Wedding, error) {
	w := Wedding{Features: defaultFeatures()}
	if err := cleanenv.ReadConfig(path, &w); err != nil {
		return nil, fmt.Errorf("reading wedding file %s: %w", path, err)
	}
	if err := w.validate(); err != nil {
		return nil, fmt.Errorf("validating wedding file %s: %w", path, err)
	}
	return &w, nil
}

func (w *Wedding) validate() error {
	if w.Date == "" {
		return fmt.Errorf("wedding date is required")
	}
	d, err := time.ParseInLocation(dateLayout, w.Date, time.Local)
	if err != nil {
		return fmt.Errorf("parsing wedding date %q: %w", w.Date, err)
	}
	w.date = d

	if w.Groom.Name == "" || w.Bride.Name == "" {
		return fmt.Errorf("groom and bride names are required")
	}
	if w.Venue.Name == "" {
		return fmt.Errorf("venue name is required")
	}
	return nil
}

// When returns the parsed ceremony time.
func (w *Wedding) When() time.Time {
	return w.date
}
