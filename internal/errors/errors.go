package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorCode string

// Category groups error kinds by the nature of the failure.
type Category string

const (
	CategoryInput    Category = "input"
	CategoryBusiness Category = "business_rule"
	CategoryLookup   Category = "lookup"
	CategoryResource Category = "resource"
	CategorySession  Category = "session"
	CategoryInternal Category = "internal"
)

// ResultSuccess is the result code reported for a successful call.
const ResultSuccess = 1

const (
	// Birth date validation (12x-13x)
	BirthDayNotNumber        ErrorCode = "birth_day_not_number"
	BirthMonthNotNumber      ErrorCode = "birth_month_not_number"
	BirthYearNotNumber       ErrorCode = "birth_year_not_number"
	BirthYearTooOld          ErrorCode = "birth_year_too_old"
	BirthYearUnderage        ErrorCode = "birth_year_underage"
	BirthMonthOutOfRange     ErrorCode = "birth_month_out_of_range"
	BirthDayOutOfRange       ErrorCode = "birth_day_out_of_range"
	BirthDayBeyondMonthEnd   ErrorCode = "birth_day_beyond_month_end"
	BirthDayBeyondFebruary   ErrorCode = "birth_day_beyond_february"
	BirthDayNotLeapYear      ErrorCode = "birth_day_not_leap_year"

	// Transaction date validation (14x-15x)
	DateDayNotNumber         ErrorCode = "date_day_not_number"
	DateMonthNotNumber       ErrorCode = "date_month_not_number"
	DateYearNotNumber        ErrorCode = "date_year_not_number"
	DateYearTooOld           ErrorCode = "date_year_too_old"
	DateYearTooLarge         ErrorCode = "date_year_too_large"
	DateMonthOutOfRange      ErrorCode = "date_month_out_of_range"
	DateDayOutOfRange        ErrorCode = "date_day_out_of_range"
	DateDayBeyondMonthEnd    ErrorCode = "date_day_beyond_month_end"
	DateDayBeyondFebruary    ErrorCode = "date_day_beyond_february"
	DateDayNotLeapYear       ErrorCode = "date_day_not_leap_year"
	DatePrecedesLatest       ErrorCode = "date_precedes_latest_transaction"

	// Account-owned collections (2xx)
	NilAccount               ErrorCode = "nil_account"
	NilItem                  ErrorCode = "nil_item"
	AllocFailure             ErrorCode = "alloc_failure"
	MissingKey               ErrorCode = "missing_key"
	AffiliateExists          ErrorCode = "affiliate_exists"
	AffiliateNotFound        ErrorCode = "affiliate_not_found"
	SubAccountExists         ErrorCode = "sub_account_exists"
	SubAccountNotFound       ErrorCode = "sub_account_not_found"

	// Repository, login and registration (30x-33x, lookup 353)
	NilRepository            ErrorCode = "nil_repository"
	AccountNotFound          ErrorCode = "account_not_found"
	DuplicateTag             ErrorCode = "duplicate_tag"
	DuplicateIBAN            ErrorCode = "duplicate_iban"
	MissingTag               ErrorCode = "missing_tag"
	MissingPassword          ErrorCode = "missing_password"
	TagTooLong               ErrorCode = "tag_too_long"
	PasswordTooLong          ErrorCode = "password_too_long"
	TagNotLetters            ErrorCode = "tag_not_letters"
	LoginFailed              ErrorCode = "login_failed"
	MissingPasswordConfirm   ErrorCode = "missing_password_confirm"
	MissingAccountType       ErrorCode = "missing_account_type"
	MissingPhone             ErrorCode = "missing_phone"
	MissingFirstName         ErrorCode = "missing_first_name"
	MissingSecondName        ErrorCode = "missing_second_name"
	MissingDay               ErrorCode = "missing_day"
	MissingMonth             ErrorCode = "missing_month"
	MissingYear              ErrorCode = "missing_year"
	PasswordMismatch         ErrorCode = "password_mismatch"
	UnknownAccountType       ErrorCode = "unknown_account_type"
	FirstNameNotLetters      ErrorCode = "first_name_not_letters"
	SecondNameNotLetters     ErrorCode = "second_name_not_letters"
	PhoneNotDigits           ErrorCode = "phone_not_digits"
	RepositoryInsertFailed   ErrorCode = "repository_insert_failed"

	// Edit and delete (34x-35x)
	InvalidAccount           ErrorCode = "invalid_account"
	WrongPassword            ErrorCode = "wrong_password"
	NewPasswordMismatch      ErrorCode = "new_password_mismatch"
	MissingCurrentPassword   ErrorCode = "missing_current_password"
	InvalidDeleteRequest     ErrorCode = "invalid_delete_request"

	// Sessions and affiliates (36x-37x)
	SessionNotFound          ErrorCode = "session_not_found"
	TooManyRequests          ErrorCode = "too_many_requests"
	AffiliateTagNotLetters   ErrorCode = "affiliate_tag_not_letters"
	MissingAffiliateIBAN     ErrorCode = "missing_affiliate_iban"

	// Transactions (4xx)
	MissingAmount            ErrorCode = "missing_amount"
	MissingDescription       ErrorCode = "missing_description"
	DescriptionTooLong       ErrorCode = "description_too_long"
	AmountNotNumber          ErrorCode = "amount_not_number"
	InvalidAmount            ErrorCode = "invalid_amount"
	InsufficientBalance      ErrorCode = "insufficient_balance"
	MissingReceiverIBAN      ErrorCode = "missing_receiver_iban"

	// Transport and internal
	InvalidInput             ErrorCode = "invalid_input"
	InternalError            ErrorCode = "internal_error"
)

type AppError struct {
	Code     ErrorCode `json:"code"`
	Result   int       `json:"result_code"`
	Category Category  `json:"category"`
	Message  string    `json:"message"`
	Details  string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target carries the same code, so copies made by
// WithDetails still match the predefined errors.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:     code,
		Result:   resultCodes[code],
		Category: categoryOf(code),
		Message:  message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return NewAppError(code, fmt.Sprintf(format, args...))
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// HTTPStatus maps the error kind to the status code used by the HTTP front-end.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case LoginFailed, SessionNotFound, WrongPassword:
		return http.StatusUnauthorized
	case TooManyRequests:
		return http.StatusTooManyRequests
	case DuplicateTag, DuplicateIBAN, AffiliateExists, SubAccountExists:
		return http.StatusConflict
	case InsufficientBalance, DatePrecedesLatest:
		return http.StatusUnprocessableEntity
	}

	switch e.Category {
	case CategoryLookup:
		return http.StatusNotFound
	case CategoryResource, CategoryInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// ResultCode returns the stable negative result code of err, ResultSuccess for a
// nil error and the internal error code for anything that is not an AppError.
func ResultCode(err error) int {
	if err == nil {
		return ResultSuccess
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Result
	}
	return resultCodes[InternalError]
}

// Is and As mirror the standard library so callers only import this package.
func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target any) bool { return stderrors.As(err, target) }

func categoryOf(code ErrorCode) Category {
	switch code {
	case AccountNotFound, AffiliateNotFound, SubAccountNotFound, LoginFailed:
		return CategoryLookup
	case NilAccount, NilItem, NilRepository, AllocFailure, MissingKey, RepositoryInsertFailed, InvalidAccount, InvalidDeleteRequest:
		return CategoryResource
	case SessionNotFound, TooManyRequests:
		return CategorySession
	case InternalError:
		return CategoryInternal
	case DuplicateTag, DuplicateIBAN, AffiliateExists, SubAccountExists,
		BirthYearTooOld, BirthYearUnderage, BirthMonthOutOfRange, BirthDayOutOfRange,
		BirthDayBeyondMonthEnd, BirthDayBeyondFebruary, BirthDayNotLeapYear,
		DateYearTooOld, DateYearTooLarge, DateMonthOutOfRange, DateDayOutOfRange,
		DateDayBeyondMonthEnd, DateDayBeyondFebruary, DateDayNotLeapYear, DatePrecedesLatest,
		PasswordMismatch, NewPasswordMismatch, WrongPassword, UnknownAccountType, InsufficientBalance:
		return CategoryBusiness
	}
	return CategoryInput
}

var resultCodes = map[ErrorCode]int{
	BirthDayNotNumber:      -121,
	BirthMonthNotNumber:    -122,
	BirthYearNotNumber:     -123,
	BirthYearTooOld:        -124,
	BirthYearUnderage:      -125,
	BirthMonthOutOfRange:   -126,
	BirthDayOutOfRange:     -127,
	BirthDayBeyondMonthEnd: -128,
	BirthDayBeyondFebruary: -129,
	BirthDayNotLeapYear:    -130,
	DateDayNotNumber:       -141,
	DateMonthNotNumber:     -142,
	DateYearNotNumber:      -143,
	DateYearTooOld:         -144,
	DateYearTooLarge:       -145,
	DateMonthOutOfRange:    -146,
	DateDayOutOfRange:      -147,
	DateDayBeyondMonthEnd:  -148,
	DateDayBeyondFebruary:  -149,
	DateDayNotLeapYear:     -150,
	DatePrecedesLatest:     -151,
	NilAccount:             -201,
	NilItem:                -202,
	AllocFailure:           -203,
	AffiliateExists:        -213,
	MissingKey:             -222,
	AffiliateNotFound:      -223,
	SubAccountExists:       -233,
	SubAccountNotFound:     -243,
	NilRepository:          -301,
	MissingTag:             -302,
	MissingPassword:        -303,
	TagTooLong:             -304,
	PasswordTooLong:        -305,
	TagNotLetters:          -306,
	LoginFailed:            -307,
	MissingPasswordConfirm: -314,
	MissingAccountType:     -315,
	MissingPhone:           -316,
	MissingFirstName:       -317,
	MissingSecondName:      -318,
	MissingDay:             -319,
	MissingMonth:           -320,
	MissingYear:            -321,
	DuplicateTag:           -322,
	PasswordMismatch:       -325,
	UnknownAccountType:     -326,
	FirstNameNotLetters:    -327,
	SecondNameNotLetters:   -328,
	PhoneNotDigits:         -329,
	RepositoryInsertFailed: -331,
	DuplicateIBAN:          -333,
	InvalidAccount:         -340,
	WrongPassword:          -341,
	NewPasswordMismatch:    -342,
	MissingCurrentPassword: -347,
	InvalidDeleteRequest:   -351,
	AccountNotFound:        -353,
	SessionNotFound:        -360,
	TooManyRequests:        -361,
	AffiliateTagNotLetters: -371,
	MissingAffiliateIBAN:   -372,
	MissingAmount:          -402,
	MissingDescription:     -403,
	DescriptionTooLong:     -404,
	AmountNotNumber:        -405,
	InvalidAmount:          -406,
	InsufficientBalance:    -417,
	MissingReceiverIBAN:    -424,
	InvalidInput:           -490,
	InternalError:          -500,
}

// Predefined errors for common cases
var (
	ErrBirthDayNotNumber      = NewAppError(BirthDayNotNumber, "the day needs to be a number")
	ErrBirthMonthNotNumber    = NewAppError(BirthMonthNotNumber, "the month needs to be a number")
	ErrBirthYearNotNumber     = NewAppError(BirthYearNotNumber, "the year needs to be a number")
	ErrBirthYearTooOld        = NewAppError(BirthYearTooOld, "the entered year is far too far away")
	ErrBirthYearUnderage      = NewAppError(BirthYearUnderage, "minimum age to open an account not reached")
	ErrBirthMonthOutOfRange   = NewAppError(BirthMonthOutOfRange, "the month does not exist")
	ErrBirthDayOutOfRange     = NewAppError(BirthDayOutOfRange, "the day does not exist")
	ErrBirthDayBeyondMonthEnd = NewAppError(BirthDayBeyondMonthEnd, "the month has only 30 days")
	ErrBirthDayBeyondFebruary = NewAppError(BirthDayBeyondFebruary, "february has at most 29 days")
	ErrBirthDayNotLeapYear    = NewAppError(BirthDayNotLeapYear, "february of that year has at most 28 days")

	ErrDateDayNotNumber      = NewAppError(DateDayNotNumber, "the day needs to be a number")
	ErrDateMonthNotNumber    = NewAppError(DateMonthNotNumber, "the month needs to be a number")
	ErrDateYearNotNumber     = NewAppError(DateYearNotNumber, "the year needs to be a number")
	ErrDateYearTooOld        = NewAppError(DateYearTooOld, "there were no banks that year")
	ErrDateYearTooLarge      = NewAppError(DateYearTooLarge, "the year must have at most 4 digits")
	ErrDateMonthOutOfRange   = NewAppError(DateMonthOutOfRange, "the month does not exist")
	ErrDateDayOutOfRange     = NewAppError(DateDayOutOfRange, "the day does not exist")
	ErrDateDayBeyondMonthEnd = NewAppError(DateDayBeyondMonthEnd, "the month has only 30 days")
	ErrDateDayBeyondFebruary = NewAppError(DateDayBeyondFebruary, "february has at most 29 days")
	ErrDateDayNotLeapYear    = NewAppError(DateDayNotLeapYear, "february of that year has at most 28 days")
	ErrDatePrecedesLatest    = NewAppError(DatePrecedesLatest, "the date precedes the latest recorded transaction")

	ErrNilAccount         = NewAppError(NilAccount, "invalid account")
	ErrNilItem            = NewAppError(NilItem, "invalid item")
	ErrAllocFailure       = NewAppError(AllocFailure, "collection growth failed")
	ErrMissingKey         = NewAppError(MissingKey, "missing lookup key")
	ErrAffiliateExists    = NewAppError(AffiliateExists, "affiliate already exists")
	ErrAffiliateNotFound  = NewAppError(AffiliateNotFound, "affiliate not found")
	ErrSubAccountExists   = NewAppError(SubAccountExists, "sub-account already exists")
	ErrSubAccountNotFound = NewAppError(SubAccountNotFound, "sub-account not found")

	ErrNilRepository          = NewAppError(NilRepository, "internal problem with the account repository")
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrDuplicateTag           = NewAppError(DuplicateTag, "account tag already used")
	ErrDuplicateIBAN          = NewAppError(DuplicateIBAN, "iban already used")
	ErrMissingTag             = NewAppError(MissingTag, "missing account tag")
	ErrMissingPassword        = NewAppError(MissingPassword, "missing password")
	ErrTagTooLong             = NewAppError(TagTooLong, "account tag is too long, maximum 20 characters")
	ErrPasswordTooLong        = NewAppError(PasswordTooLong, "password is too long, maximum 32 characters")
	ErrTagNotLetters          = NewAppError(TagNotLetters, "account tag can have only letters")
	ErrLoginFailed            = NewAppError(LoginFailed, "account tag can't be found or wrong password")
	ErrMissingPasswordConfirm = NewAppError(MissingPasswordConfirm, "missing password confirmation")
	ErrMissingAccountType     = NewAppError(MissingAccountType, "missing account type")
	ErrMissingPhone           = NewAppError(MissingPhone, "missing phone number")
	ErrMissingFirstName       = NewAppError(MissingFirstName, "missing first name")
	ErrMissingSecondName      = NewAppError(MissingSecondName, "missing second name")
	ErrMissingDay             = NewAppError(MissingDay, "missing day")
	ErrMissingMonth           = NewAppError(MissingMonth, "missing month")
	ErrMissingYear            = NewAppError(MissingYear, "missing year")
	ErrPasswordMismatch       = NewAppError(PasswordMismatch, "the passwords do not match")
	ErrUnknownAccountType     = NewAppError(UnknownAccountType, "invalid account type, available types: savings, checking, credit")
	ErrFirstNameNotLetters    = NewAppError(FirstNameNotLetters, "first name can have only letters")
	ErrSecondNameNotLetters   = NewAppError(SecondNameNotLetters, "second name can have only letters")
	ErrPhoneNotDigits         = NewAppError(PhoneNotDigits, "phone number can have only digits")
	ErrRepositoryInsertFailed = NewAppError(RepositoryInsertFailed, "failed to add account to repository")
	ErrInvalidAccount         = NewAppError(InvalidAccount, "invalid account")
	ErrWrongPassword          = NewAppError(WrongPassword, "the entered password is wrong")
	ErrNewPasswordMismatch    = NewAppError(NewPasswordMismatch, "the new passwords do not match")
	ErrMissingCurrentPassword = NewAppError(MissingCurrentPassword, "missing current password")
	ErrInvalidDeleteRequest   = NewAppError(InvalidDeleteRequest, "invalid parameters for account deletion")
	ErrSessionNotFound        = NewAppError(SessionNotFound, "session not found or expired")
	ErrTooManyRequests        = NewAppError(TooManyRequests, "too many requests")
	ErrAffiliateTagNotLetters = NewAppError(AffiliateTagNotLetters, "affiliate tag can have only letters")
	ErrMissingAffiliateIBAN   = NewAppError(MissingAffiliateIBAN, "missing affiliate iban")

	ErrMissingAmount       = NewAppError(MissingAmount, "an amount is required")
	ErrMissingDescription  = NewAppError(MissingDescription, "missing description")
	ErrDescriptionTooLong  = NewAppError(DescriptionTooLong, "the description is too long, maximum 99 characters")
	ErrAmountNotNumber     = NewAppError(AmountNotNumber, "the amount isn't a number")
	ErrInvalidAmount       = NewAppError(InvalidAmount, "invalid amount")
	ErrInsufficientBalance = NewAppError(InsufficientBalance, "balance is lower than the requested amount")
	ErrMissingReceiverIBAN = NewAppError(MissingReceiverIBAN, "missing receiver iban")
)
