package ledger

import (
	"strconv"
	"strings"

	"github.com/magabrotheeeer/finance-ledger/internal/errs"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Сообщения правил валидации. Вызывающие стороны (и тесты) опираются
// на семантику первого нарушенного правила, порядок проверок фиксирован.
const (
	MsgInvalidDescription = "a valid description is required"
	MsgInvalidMonth       = "a valid month (1-12) is required"
	MsgInvalidYear        = "a valid 4-digit year is required"
	MsgMissingUser        = "an owning user is required"
	MsgInvalidAmount      = "an amount greater than zero is required"
	MsgMissingType        = "an entry type is required"
)

// Validate проверяет одну запись журнала и возвращает ValidationError
// с сообщением первого нарушенного правила. Порядок проверок:
// описание, месяц, год, пользователь, сумма, тип. Без побочных эффектов.
func Validate(e models.Entry) error {
	if strings.TrimSpace(e.Description) == "" {
		return errs.NewValidation(MsgInvalidDescription)
	}
	if e.Month < 1 || e.Month > 12 {
		return errs.NewValidation(MsgInvalidMonth)
	}
	if e.Year < 0 || len(strconv.Itoa(e.Year)) != 4 {
		return errs.NewValidation(MsgInvalidYear)
	}
	if e.UserID == 0 {
		return errs.NewValidation(MsgMissingUser)
	}
	if !e.Amount.IsPositive() {
		return errs.NewValidation(MsgInvalidAmount)
	}
	if e.Type == "" {
		return errs.NewValidation(MsgMissingType)
	}
	return nil
}
