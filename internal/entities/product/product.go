package product

// Collection holds the storefront catalogue
const Collection = "Products"
