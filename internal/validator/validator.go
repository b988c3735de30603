package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

// Course is the user-facing form of a single course entry. Every field is
// required; the label tag names the field in error messages.
type Course struct {
	Name       string `json:"name" label:"课程名称" binding:"required"`
	Weekday    string `json:"weekday" label:"星期" binding:"required,weekday"`
	Start      string `json:"start" label:"开始时间" binding:"required,hhmm"`
	End        string `json:"end" label:"结束时间" binding:"required,hhmm"`
	Room       string `json:"room" label:"教室" binding:"required"`
	Instructor string `json:"instructor" label:"任课老师" binding:"required"`
}

// Entry converts a validated course. It must only be called after Struct
// returned no errors.
func (c Course) Entry() model.Entry {
	day, _ := model.ParseWeekday(c.Weekday)
	start, _ := timecalc.ParseClock(c.Start)
	end, _ := timecalc.ParseClock(c.End)
	return model.Entry{
		Name:       c.Name,
		Weekday:    day,
		Start:      start,
		End:        end,
		Room:       c.Room,
		Instructor: c.Instructor,
	}
}

// Validator wraps a go-playground validator with Chinese translations.
type Validator struct {
	v     *govalidator.Validate
	trans ut.Translator
}

// New returns a standalone validator for use outside of Gin.
func New() *Validator {
	v := govalidator.New()
	v.SetTagName("binding")
	return configure(v)
}

var (
	ginOnce      sync.Once
	ginValidator *Validator
)

// Setup registers the custom rules and Chinese translations on Gin's binding
// engine and returns a Validator sharing that engine. Safe to call repeatedly.
func Setup() *Validator {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*govalidator.Validate); ok {
			ginValidator = configure(v)
		} else {
			ginValidator = New()
		}
	})
	return ginValidator
}

func configure(v *govalidator.Validate) *Validator {
	// Use the label tag, then the JSON tag, for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("hhmm", func(fl govalidator.FieldLevel) bool {
		_, err := timecalc.ParseClock(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl govalidator.FieldLevel) bool {
		_, err := model.ParseWeekday(fl.Field().String())
		return err == nil
	})

	zhLocale := zh.New()
	uni := ut.New(zhLocale, zhLocale)
	trans, _ := uni.GetTranslator("zh")
	_ = zh_translations.RegisterDefaultTranslations(v, trans)
	registerMessage(v, trans, "hhmm", "{0}必须是HH:MM格式（00:00-23:59）")
	registerMessage(v, trans, "weekday", "{0}必须是周一至周日之一")

	return &Validator{v: v, trans: trans}
}

func registerMessage(v *govalidator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe govalidator.FieldError) string {
			msg, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// Struct validates s and returns a map of field label to message, or nil.
func (x *Validator) Struct(s any) map[string]string {
	if err := x.v.Struct(s); err != nil {
		return x.TranslateErrors(err)
	}
	return nil
}

// Course validates c and converts it to an entry.
func (x *Validator) Course(c Course) (model.Entry, map[string]string) {
	if fields := x.Struct(c); fields != nil {
		return model.Entry{}, fields
	}
	return c.Entry(), nil
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func (x *Validator) TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(x.trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func (x *Validator) Bind(c *gin.Context, dst any) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return x.TranslateErrors(err)
	}
	return nil
}
