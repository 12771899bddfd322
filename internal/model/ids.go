package model

import "strconv"

// 两套主键，严禁混用：
// Shop 缓存按 UserID 寻址（后端 /users/:id/shop 的 :id 是用户主键）
// Reminder / QueueType 缓存按 ShopID 寻址（后端资源挂在店铺下）
// 定义为不同类型后，取错键在编译期就会报错

// UserID 商户账号主键
type UserID int64

// ShopID 店铺主键
type ShopID int64

func (id UserID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id ShopID) String() string { return strconv.FormatInt(int64(id), 10) }
