package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Dateは日付のみ（時刻なし）の値。JSONは "2006-01-02"、DBはdate型。
type Date struct {
	time.Time
}

// Todayは今日の日付（時刻切り捨て）。
func Today() Date {
	return DateOf(time.Now())
}

// DateOfはtime.Timeの日付部分だけを取り出す。
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = Date{t}
	return nil
}

// Value はgorm/database sql用。
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan はDBのdate値を読み取る。
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		*d = Date{t}
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// GormDataType でカラム型をdateに固定。
func (Date) GormDataType() string {
	return "date"
}
