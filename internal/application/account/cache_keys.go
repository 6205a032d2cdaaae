package account

import "fmt"

func cacheKeyAccount(id int64) string {
	return fmt.Sprintf("user_account:%d", id)
}
