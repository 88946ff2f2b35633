package user

// Collection holds signed-up users
const Collection = "Users"
