package services

import "github.com/pkg/errors"

var (
	ErrJobNotFound         = errors.New("求人が見つかりません")
	ErrEngineerNotFound    = errors.New("エンジニアが見つかりません")
	ErrCompanyNotFound     = errors.New("企業が見つかりません")
	ErrApplicationNotFound = errors.New("応募情報が見つかりません")
	ErrAlreadyApplied      = errors.New("この求人には既に応募済みです")
	ErrAlreadyLinked       = errors.New("このエンジニアは既に案件に紐付けられています")
	ErrCompanyNameTaken    = errors.New("この企業名は既に登録されています")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrEmptyMessage        = errors.New("メッセージを入力してください")
	ErrWrongUserType       = errors.New("this action is not available for this account type")
)
