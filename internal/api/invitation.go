package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gpjeong/wedding/internal/config"
)

// Invitation is the static page content in one payload. Sections gated off
// by a feature toggle are omitted entirely.
type Invitation struct {
	Groom       PersonInfo      `json:"groom"`
	Bride       PersonInfo      `json:"bride"`
	Date        string          `json:"date"`
	Venue       VenueInfo       `json:"venue"`
	Greeting    string          `json:"greeting"`
	Gallery     []string        `json:"gallery"`
	MainPhoto   string          `json:"mainPhoto"`
	IntroPhoto  string          `json:"introPhoto"`
	Meta        config.Meta     `json:"meta"`
	Features    config.Features `json:"features"`
	Share       *ShareInfo      `json:"share,omitempty"`
	IntroOpened bool            `json:"introOpened"`
}

type PersonInfo struct {
	Name        string        `json:"name"`
	EnglishName string        `json:"englishName"`
	Phone       string        `json:"phone"`
	Tel         string        `json:"tel"`
	SMS         string        `json:"sms"`
	Father      *ParentInfo   `json:"father,omitempty"`
	Mother      *ParentInfo   `json:"mother,omitempty"`
	FamilyOrder string        `json:"familyOrder"`
	Accounts    []AccountInfo `json:"accounts,omitempty"`
}

type ParentInfo struct {
	Name  string `json:"name"`
	Alive bool   `json:"alive"`
}

type AccountInfo struct {
	Bank   string `json:"bank"`
	Number string `json:"number"`
	Holder string `json:"holder"`
}

type VenueInfo struct {
	Name    string    `json:"name"`
	Hall    string    `json:"hall"`
	Address string    `json:"address"`
	Lat     float64   `json:"lat"`
	Lng     float64   `json:"lng"`
	Tel     string    `json:"tel"`
	Subway  string    `json:"subway"`
	Bus     string    `json:"bus"`
	Parking string    `json:"parking"`
	Links   *MapLinks `json:"links,omitempty"`
}

// MapLinks are provider deep-links for directions, one per enabled provider.
type MapLinks struct {
	Kakao string `json:"kakao,omitempty"`
	Naver string `json:"naver,omitempty"`
	Tmap  string `json:"tmap,omitempty"`
}

type ShareInfo struct {
	JSKey       string `json:"jsKey"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
}

func (h *Handler) GetInvitation(c *gin.Context) {
	c.JSON(http.StatusOK, buildInvitation(h.wedding, h.intro.Opened()))
}

func buildInvitation(w *config.Wedding, introOpened bool) Invitation {
	inv := Invitation{
		Groom:       personInfo(w.Groom, w.Features.CopyAccount),
		Bride:       personInfo(w.Bride, w.Features.CopyAccount),
		Date:        w.Date,
		Venue:       venueInfo(w),
		Greeting:    w.Greeting,
		Gallery:     w.Gallery,
		MainPhoto:   w.MainPhoto,
		IntroPhoto:  w.IntroPhoto,
		Meta:        w.Meta,
		Features:    w.Features,
		IntroOpened: introOpened,
	}

	if w.Features.KakaoShare {
		inv.Share = &ShareInfo{
			JSKey:       w.Kakao.JSKey,
			Title:       w.Meta.Title,
			Description: w.Meta.Description,
			Image:       w.Kakao.ShareImage,
			Link:        w.Meta.SiteURL,
		}
	}

	return inv
}

func personInfo(p config.Person, withAccounts bool) PersonInfo {
	info := PersonInfo{
		Name:        p.Name,
		EnglishName: p.EnglishName,
		Phone:       p.Phone,
		Tel:         "tel:" + p.Phone,
		SMS:         "sms:" + p.Phone,
		FamilyOrder: p.FamilyOrder,
	}
	if p.Father.Name != "" {
		info.Father = &ParentInfo{Name: p.Father.Name, Alive: p.Father.Alive}
	}
	if p.Mother.Name != "" {
		info.Mother = &ParentInfo{Name: p.Mother.Name, Alive: p.Mother.Alive}
	}

	if withAccounts {
		for _, acc := range []config.Account{p.Account, p.FatherAccount, p.MotherAccount} {
			if acc.Number == "" {
				continue
			}
			info.Accounts = append(info.Accounts, AccountInfo(acc))
		}
	}

	return info
}

func venueInfo(w *config.Wedding) VenueInfo {
	v := w.Venue
	info := VenueInfo{
		Name:    v.Name,
		Hall:    v.Hall,
		Address: v.Address,
		Lat:     v.Lat,
		Lng:     v.Lng,
		Tel:     v.Tel,
		Subway:  v.Subway,
		Bus:     v.Bus,
		Parking: v.Parking,
	}

	name := url.PathEscape(v.Name)
	links := MapLinks{}
	if w.Features.NavKakao {
		links.Kakao = fmt.Sprintf("https://map.kakao.com/link/to/%s,%v,%v", name, v.Lat, v.Lng)
	}
	if w.Features.NavNaver {
		links.Naver = fmt.Sprintf("https://map.naver.com/v5/search/%s?c=%v,%v,15,0,0,0,dh", name, v.Lng, v.Lat)
	}
	if w.Features.NavTmap {
		links.Tmap = fmt.Sprintf("https://tmap.life/route?goalx=%v&goaly=%v&goalname=%s", v.Lng, v.Lat, name)
	}
	if links != (MapLinks{}) {
		info.Links = &links
	}

	return info
}
