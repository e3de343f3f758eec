package repository

import (
	"errors"

	"gorm.io/gorm"
)

// translateWriteError 将驱动层唯一约束错误统一为 ErrDuplicateKey
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

// isNotFound 判断是否为记录不存在
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
